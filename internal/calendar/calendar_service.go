package calendar

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	calendarerrors "go-teamdesk/internal/calendar/errors"
	"go-teamdesk/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TeamDirectory interface {
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	LeaderOf(ctx context.Context, teamID string) (string, error)
}

//go:generate mockgen -source=calendar_service.go -destination=mock/calendar_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateEventRequest) (EventResponse, error)
	GetAll(ctx context.Context, actor Actor, filter ListFilter) ([]EventResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (EventResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateEventRequest) (EventResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	teams  TeamDirectory
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, teams TeamDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{db: db, repo: repo, teams: teams, logger: l}
}

func normalizeTitle(v string) (string, error) {
	title := strings.TrimSpace(v)
	if title == "" {
		return "", calendarerrors.ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > 100 {
		return "", calendarerrors.ErrTitleTooLong
	}
	return title, nil
}

func (s *service) requireLeader(ctx context.Context, actor Actor, teamID string) error {
	if actor.IsStaff {
		return nil
	}
	leaderID, err := s.teams.LeaderOf(ctx, teamID)
	if err != nil {
		return err
	}
	if leaderID != actor.UserID {
		return calendarerrors.ErrNotTeamLeader
	}
	return nil
}

func (s *service) canView(ctx context.Context, actor Actor, teamID string) (bool, error) {
	if actor.IsStaff {
		return true, nil
	}
	leaderID, err := s.teams.LeaderOf(ctx, teamID)
	if err != nil {
		return false, err
	}
	if leaderID == actor.UserID {
		return true, nil
	}
	return s.teams.IsMember(ctx, teamID, actor.UserID)
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateEventRequest) (EventResponse, error) {
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return EventResponse{}, calendarerrors.ErrInvalidID
	}
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return EventResponse{}, err
	}
	if err := s.requireLeader(ctx, actor, req.TeamID); err != nil {
		return EventResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create calendar event begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	e := &CalendarEvent{
		ID:      uuid.New(),
		Title:   title,
		StartAt: req.StartAt.UTC(),
		EndAt:   req.EndAt.UTC(),
		TeamID:  teamID,
	}
	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return EventResponse{}, err
	}

	s.logger.Info("calendar event created",
		zap.String("event_id", e.ID.String()),
		zap.String("team_id", req.TeamID),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, actor Actor, filter ListFilter) ([]EventResponse, error) {
	if !actor.IsStaff {
		filter.UserID = actor.UserID
	}
	events, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]EventResponse, len(events))
	for i, e := range events {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (EventResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EventResponse{}, calendarerrors.ErrInvalidID
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}
	ok, err := s.canView(ctx, actor, e.TeamID.String())
	if err != nil {
		return EventResponse{}, err
	}
	if !ok {
		return EventResponse{}, calendarerrors.ErrEventNotFound
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateEventRequest) (EventResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EventResponse{}, calendarerrors.ErrInvalidID
	}
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return EventResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}
	if err := s.requireLeader(ctx, actor, e.TeamID.String()); err != nil {
		return EventResponse{}, err
	}
	e.Title = title
	e.StartAt = req.StartAt.UTC()
	e.EndAt = req.EndAt.UTC()
	if err := qtx.Update(ctx, e); err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return EventResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return calendarerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.requireLeader(ctx, actor, e.TeamID.String()); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("calendar event deleted", zap.String("event_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if apperror.IsForeignKeyViolation(err) {
		return calendarerrors.ErrTeamNotFound
	}
	return apperror.MapStorageError(err, calendarerrors.ErrEventNotFound)
}

func mapToResponse(e CalendarEvent) EventResponse {
	return EventResponse{
		ID:      e.ID.String(),
		Title:   e.Title,
		StartAt: e.StartAt.Format(time.RFC3339),
		EndAt:   e.EndAt.Format(time.RFC3339),
		TeamID:  e.TeamID.String(),
	}
}
