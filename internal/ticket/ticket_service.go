package ticket

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/events"
	"go-teamdesk/internal/messaging/kafka"
	"go-teamdesk/internal/shared/apperror"
	"go-teamdesk/internal/shared/counter"
	ticketerrors "go-teamdesk/internal/ticket/errors"
	"go-teamdesk/internal/tickettype"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	aggregateType     = "team_ticket"
	numberCounterType = "ticket"
	numberFormat      = "TK-%06d"
)

type TeamDirectory interface {
	LeaderOf(ctx context.Context, teamID string) (string, error)
}

type TypeLookup interface {
	GetByID(ctx context.Context, id string) (tickettype.TicketTypeResponse, error)
}

//go:generate mockgen -source=ticket_service.go -destination=mock/ticket_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateTicketRequest) (TicketResponse, error)
	GetAll(ctx context.Context, actor Actor, filter ListFilter) ([]TicketResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (TicketResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateTicketRequest) (TicketResponse, error)
	Process(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error)
	Close(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error)
	Reject(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error)
	MarkDeleted(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	teams    TeamDirectory
	types    TypeLookup
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	teams TeamDirectory,
	types TypeLookup,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("ticket.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ticket.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		outbox:   outbox,
		teams:    teams,
		types:    types,
		logger:   l,
	}
}

// FormatNumber renders a counter value as a ticket number.
func FormatNumber(n int64) string {
	return fmt.Sprintf(numberFormat, n)
}

func validateNumber(v string) (string, error) {
	n := strings.TrimSpace(v)
	if utf8.RuneCountInString(n) > 10 {
		return "", ticketerrors.ErrTicketNumberTooLong
	}
	return n, nil
}

func parseOptionalID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, ticketerrors.ErrInvalidID
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateTicketRequest) (TicketResponse, error) {
	raiser := actor.UserID
	if req.RaisedBy != "" && req.RaisedBy != actor.UserID {
		if !actor.IsStaff {
			return TicketResponse{}, ticketerrors.ErrForeignUser
		}
		raiser = req.RaisedBy
	}
	raisedBy, err := uuid.Parse(raiser)
	if err != nil {
		return TicketResponse{}, ticketerrors.ErrInvalidID
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return TicketResponse{}, ticketerrors.ErrInvalidID
	}
	typeID, err := uuid.Parse(req.TicketTypeID)
	if err != nil {
		return TicketResponse{}, ticketerrors.ErrInvalidID
	}
	detail := strings.TrimSpace(req.IssueDetail)
	if detail == "" {
		return TicketResponse{}, ticketerrors.ErrIssueDetailRequired
	}
	number, err := validateNumber(req.TicketNumber)
	if err != nil {
		return TicketResponse{}, err
	}
	issueDate := utcPtr(req.IssueDate)

	tt, err := s.types.GetByID(ctx, req.TicketTypeID)
	if err != nil {
		return TicketResponse{}, err
	}
	if !tt.Active {
		return TicketResponse{}, ticketerrors.ErrTicketTypeInactive
	}
	leaderID, err := s.teams.LeaderOf(ctx, req.TeamID)
	if err != nil {
		return TicketResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create ticket begin tx failed", zap.Error(err))
		return TicketResponse{}, err
	}
	defer tx.Rollback()

	if number == "" {
		next, err := s.counters.WithTx(tx).GetNextValue(ctx, req.TeamID, numberCounterType)
		if err != nil {
			s.logger.Error("allocate ticket number failed", zap.String("team_id", req.TeamID), zap.Error(err))
			return TicketResponse{}, err
		}
		number = FormatNumber(next)
	}

	qtx := s.repo.WithTx(tx)
	t := &TeamTicket{
		ID:           uuid.New(),
		TicketNumber: number,
		TicketTypeID: typeID,
		RaisedByID:   raisedBy,
		IssueDetail:  detail,
		IssueDate:    issueDate,
		Status:       domain.TicketStatusRaised,
		TeamID:       teamID,
	}
	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create ticket persist failed", zap.Error(err))
		return TicketResponse{}, mapRepositoryError(err)
	}
	created, err := qtx.FindByID(ctx, t.ID.String())
	if err != nil {
		return TicketResponse{}, mapRepositoryError(err)
	}

	payload := events.TicketRaisedEvent{
		EventType:    events.TicketRaised,
		TicketID:     t.ID.String(),
		TicketNumber: number,
		TicketType:   tt.Name,
		RaisedBy:     raisedBy.String(),
		TeamID:       req.TeamID,
		LeaderID:     leaderID,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.enqueue(ctx, tx, t.ID.String(), events.TicketRaised, payload); err != nil {
		return TicketResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create ticket commit failed", zap.Error(err))
		return TicketResponse{}, err
	}

	s.logger.Info("ticket raised",
		zap.String("ticket_id", t.ID.String()),
		zap.String("ticket_number", number),
		zap.String("team_id", req.TeamID),
	)
	return mapToResponse(*created), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, ticketID, eventType string, payload any) error {
	evt, err := kafka.NewOutboxEvent(ctx, aggregateType, ticketID, eventType, events.TicketLifecycleTopic, payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		s.logger.Error("enqueue ticket event failed",
			zap.String("ticket_id", ticketID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) enqueueStatusChange(ctx context.Context, tx *sql.Tx, actor Actor, t TeamTicket) error {
	payload := events.TicketStatusChangedEvent{
		EventType:    events.TicketStatusChanged,
		TicketID:     t.ID.String(),
		TicketNumber: t.TicketNumber,
		RaisedBy:     t.RaisedByID.String(),
		Status:       int(t.Status),
		StatusLabel:  t.Status.Label(),
		ChangedBy:    actor.UserID,
		Comments:     t.Comments,
		OccurredAt:   time.Now().UTC(),
	}
	return s.enqueue(ctx, tx, t.ID.String(), events.TicketStatusChanged, payload)
}

func (s *service) GetAll(ctx context.Context, actor Actor, filter ListFilter) ([]TicketResponse, error) {
	if filter.Status != nil {
		if _, err := domain.ParseTicketStatus(*filter.Status); err != nil {
			return nil, ticketerrors.ErrInvalidStatus
		}
	}
	if !actor.IsStaff {
		filter.UserID = actor.UserID
	}
	tickets, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (TicketResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TicketResponse{}, ticketerrors.ErrInvalidID
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TicketResponse{}, mapRepositoryError(err)
	}
	if !actor.IsStaff && t.RaisedByID.String() != actor.UserID {
		if err := s.requireLeader(ctx, actor, *t); err != nil {
			return TicketResponse{}, ticketerrors.ErrTicketNotFound
		}
	}
	return mapToResponse(*t), nil
}

// Update writes every supplied field verbatim and leaves omitted optional
// fields as stored. The status graph is not consulted here; the workflow
// operations enforce it.
func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateTicketRequest) (TicketResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TicketResponse{}, ticketerrors.ErrInvalidID
	}
	typeID, err := uuid.Parse(req.TicketTypeID)
	if err != nil {
		return TicketResponse{}, ticketerrors.ErrInvalidID
	}
	detail := strings.TrimSpace(req.IssueDetail)
	if detail == "" {
		return TicketResponse{}, ticketerrors.ErrIssueDetailRequired
	}
	number, err := validateNumber(req.TicketNumber)
	if err != nil {
		return TicketResponse{}, err
	}
	issueDate := utcPtr(req.IssueDate)
	responseBy, err := parseOptionalID(req.ResponseBy)
	if err != nil {
		return TicketResponse{}, err
	}
	closedBy, err := parseOptionalID(req.ClosedBy)
	if err != nil {
		return TicketResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update ticket begin tx failed", zap.Error(err))
		return TicketResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TicketResponse{}, mapRepositoryError(err)
	}
	if err := s.requireLeader(ctx, actor, *t); err != nil {
		return TicketResponse{}, err
	}

	previous := t.Status
	if req.TicketStatus != nil {
		status, err := domain.ParseTicketStatus(*req.TicketStatus)
		if err != nil {
			return TicketResponse{}, ticketerrors.ErrInvalidStatus
		}
		t.Status = status
	}
	if t.TicketTypeID != typeID {
		t.TicketType = nil
	}
	t.TicketNumber = number
	t.TicketTypeID = typeID
	t.IssueDetail = detail
	if issueDate != nil {
		t.IssueDate = issueDate
	}
	if req.ResponseDate != nil {
		t.ResponseDate = utcPtr(req.ResponseDate)
	}
	if responseBy != nil {
		t.ResponseByID = responseBy
	}
	if req.Comments != nil {
		t.Comments = *req.Comments
	}
	if req.ClosedDate != nil {
		t.ClosedDate = utcPtr(req.ClosedDate)
	}
	if closedBy != nil {
		t.ClosedByID = closedBy
	}

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update ticket persist failed", zap.String("ticket_id", id), zap.Error(err))
		return TicketResponse{}, mapRepositoryError(err)
	}
	if t.Status != previous {
		if err := s.enqueueStatusChange(ctx, tx, actor, *t); err != nil {
			return TicketResponse{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update ticket commit failed", zap.String("ticket_id", id), zap.Error(err))
		return TicketResponse{}, err
	}

	s.logger.Info("ticket updated",
		zap.String("ticket_id", id),
		zap.String("from_status", previous.Label()),
		zap.String("to_status", t.Status.Label()),
	)
	return mapToResponse(*t), nil
}

func (s *service) Process(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error) {
	return s.transition(ctx, actor, id, domain.TicketStatusProcessing, req)
}

func (s *service) Close(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error) {
	return s.transition(ctx, actor, id, domain.TicketStatusClosed, req)
}

func (s *service) Reject(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error) {
	return s.transition(ctx, actor, id, domain.TicketStatusRejected, req)
}

func (s *service) MarkDeleted(ctx context.Context, actor Actor, id string, req TransitionRequest) (TicketResponse, error) {
	return s.transition(ctx, actor, id, domain.TicketStatusDeleted, req)
}

// transition moves the ticket along the status graph and stamps only the
// fields present in req.
func (s *service) transition(ctx context.Context, actor Actor, id string, target domain.TicketStatus, req TransitionRequest) (TicketResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TicketResponse{}, ticketerrors.ErrInvalidID
	}
	responseBy, err := parseOptionalID(req.ResponseBy)
	if err != nil {
		return TicketResponse{}, err
	}
	closedBy, err := parseOptionalID(req.ClosedBy)
	if err != nil {
		return TicketResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("ticket transition begin tx failed", zap.Error(err))
		return TicketResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TicketResponse{}, mapRepositoryError(err)
	}
	if !t.Status.CanTransitionTo(target) {
		s.logger.Warn("ticket transition rejected",
			zap.String("ticket_id", id),
			zap.String("from_status", t.Status.Label()),
			zap.String("to_status", target.Label()),
		)
		return TicketResponse{}, ticketerrors.ErrInvalidStatusTransition
	}
	if err := s.requireLeader(ctx, actor, *t); err != nil {
		return TicketResponse{}, err
	}

	t.Status = target
	if req.Comments != nil {
		t.Comments = *req.Comments
	}
	if req.ResponseDate != nil {
		t.ResponseDate = utcPtr(req.ResponseDate)
	}
	if responseBy != nil {
		t.ResponseByID = responseBy
	}
	if req.ClosedDate != nil {
		t.ClosedDate = utcPtr(req.ClosedDate)
	}
	if closedBy != nil {
		t.ClosedByID = closedBy
	}

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("ticket transition persist failed", zap.String("ticket_id", id), zap.Error(err))
		return TicketResponse{}, mapRepositoryError(err)
	}
	if err := s.enqueueStatusChange(ctx, tx, actor, *t); err != nil {
		return TicketResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("ticket transition commit failed", zap.String("ticket_id", id), zap.Error(err))
		return TicketResponse{}, err
	}

	s.logger.Info("ticket transitioned",
		zap.String("ticket_id", id),
		zap.String("status", target.Label()),
		zap.String("actor_id", actor.UserID),
	)
	return mapToResponse(*t), nil
}

func (s *service) requireLeader(ctx context.Context, actor Actor, t TeamTicket) error {
	if actor.IsStaff {
		return nil
	}
	leaderID, err := s.teams.LeaderOf(ctx, t.TeamID.String())
	if err != nil {
		return err
	}
	if leaderID != actor.UserID {
		return ticketerrors.ErrNotTeamLeader
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ticketerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("ticket deleted", zap.String("ticket_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if apperror.IsForeignKeyViolation(err) {
		return ticketerrors.ErrUnknownReference
	}
	return apperror.MapStorageError(err, ticketerrors.ErrTicketNotFound)
}

func formatTime(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	v := t.Format(layout)
	return &v
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToResponse(t TeamTicket) TicketResponse {
	resp := TicketResponse{
		ID:           t.ID.String(),
		TicketNumber: t.TicketNumber,
		TicketTypeID: t.TicketTypeID.String(),
		RaisedBy:     t.RaisedByID.String(),
		IssueDetail:  t.IssueDetail,
		IssueDate:    formatTime(t.IssueDate, time.RFC3339),
		ResponseDate: formatTime(t.ResponseDate, time.RFC3339),
		ResponseBy:   idString(t.ResponseByID),
		Comments:     t.Comments,
		TicketStatus: int(t.Status),
		StatusLabel:  t.Status.Label(),
		ClosedDate:   formatTime(t.ClosedDate, time.RFC3339),
		ClosedBy:     idString(t.ClosedByID),
		TeamID:       t.TeamID.String(),
		Display:      t.String(),
	}
	if t.TicketType != nil {
		resp.TicketTypeName = t.TicketType.Name
	}
	if t.RaisedBy != nil {
		resp.RaisedByName = t.RaisedBy.Username
	}
	if !t.RaisedDate.IsZero() {
		resp.RaisedDate = t.RaisedDate.Format(time.RFC3339)
	}
	return resp
}
