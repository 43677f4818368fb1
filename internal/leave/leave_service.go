package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/events"
	leaveerrors "go-teamdesk/internal/leave/errors"
	"go-teamdesk/internal/messaging/kafka"
	"go-teamdesk/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const aggregateType = "leave_application"

// TeamDirectory answers the team questions a leave application depends on.
type TeamDirectory interface {
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	LeaderOf(ctx context.Context, teamID string) (string, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor Actor, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor Actor, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type Options struct {
	// RequireMembership rejects applications whose user is not a member of
	// the selected team.
	RequireMembership bool
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	teams  TeamDirectory
	opts   Options
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	teams TeamDirectory,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, teams: teams, opts: opts, logger: l}
}

// ValidateDates parses both dates and enforces start <= end. Equal dates are
// a one-day leave.
func ValidateDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(v), time.UTC)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, leaveerrors.ErrInvalidID
	}
	return &id, nil
}

func (s *service) checkMembership(ctx context.Context, teamID, userID *uuid.UUID) error {
	if !s.opts.RequireMembership || teamID == nil || userID == nil {
		return nil
	}
	ok, err := s.teams.IsMember(ctx, teamID.String(), userID.String())
	if err != nil {
		return err
	}
	if !ok {
		return leaveerrors.ErrNotTeamMember
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	applicant := actor.UserID
	if req.UserID != "" && req.UserID != actor.UserID {
		if !actor.IsStaff {
			return LeaveResponse{}, leaveerrors.ErrForeignUser
		}
		applicant = req.UserID
	}
	userID, err := uuid.Parse(applicant)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidID
	}
	teamID, err := parseOptionalID(req.TeamID)
	if err != nil {
		return LeaveResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}
	startDate, endDate, err := ValidateDates(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.checkMembership(ctx, teamID, &userID); err != nil {
		return LeaveResponse{}, err
	}

	var leaderID string
	if teamID != nil {
		if leaderID, err = s.teams.LeaderOf(ctx, teamID.String()); err != nil {
			return LeaveResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l := &LeaveApplication{
		ID:        uuid.New(),
		UserID:    &userID,
		TeamID:    teamID,
		Reason:    reason,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.LeaveStatusPending,
	}
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	created, err := qtx.FindByID(ctx, l.ID.String())
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if leaderID != "" {
		payload := events.LeaveAppliedEvent{
			EventType:   events.LeaveApplied,
			LeaveID:     l.ID.String(),
			ApplicantID: userID.String(),
			Applicant:   applicantName(*created),
			TeamID:      teamID.String(),
			LeaderID:    leaderID,
			StartDate:   startDate.Format(dateLayout),
			EndDate:     endDate.Format(dateLayout),
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.enqueue(ctx, tx, l.ID.String(), events.LeaveApplied, payload); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave applied",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("days", l.Days()),
	)
	return mapToResponse(*created), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, leaveID, eventType string, payload any) error {
	evt, err := kafka.NewOutboxEvent(ctx, aggregateType, leaveID, eventType, events.LeaveLifecycleTopic, payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, evt); err != nil {
		s.logger.Error("enqueue leave event failed",
			zap.String("leave_id", leaveID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// GetAll lists applications. Non-staff callers see their own, or a whole
// team's when they lead it.
func (s *service) GetAll(ctx context.Context, actor Actor, filter ListFilter) ([]LeaveResponse, error) {
	if filter.Status != nil {
		if _, err := domain.ParseLeaveStatus(*filter.Status); err != nil {
			return nil, leaveerrors.ErrInvalidStatus
		}
	}
	if !actor.IsStaff {
		if filter.TeamID != "" {
			if err := s.requireLeader(ctx, actor, filter.TeamID); err != nil {
				return nil, err
			}
		} else {
			filter.UserID = actor.UserID
		}
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !actor.IsStaff && !ownedBy(*l, actor.UserID) {
		if err := s.requireLeader(ctx, actor, teamOf(*l)); err != nil {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
	}
	return mapToResponse(*l), nil
}

// Update edits an application. A status change goes through the same rules
// as Approve and Reject. Decided applications are read-only.
func (s *service) Update(ctx context.Context, actor Actor, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidID
	}
	teamID, err := parseOptionalID(req.TeamID)
	if err != nil {
		return LeaveResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}
	startDate, endDate, err := ValidateDates(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !actor.IsStaff && !ownedBy(*l, actor.UserID) {
		return LeaveResponse{}, leaveerrors.ErrForeignUser
	}

	next := l.Status
	if req.Status != nil {
		if next, err = domain.ParseLeaveStatus(*req.Status); err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidStatus
		}
	}
	changed := next != l.Status
	if l.Status.Terminal() && (changed || !sameContent(*l, teamID, reason, startDate, endDate)) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if changed {
		if !l.Status.CanTransitionTo(next) {
			return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
		}
		if err := s.requireLeader(ctx, actor, teamOf(*l)); err != nil {
			return LeaveResponse{}, err
		}
	}
	if err := s.checkMembership(ctx, teamID, l.UserID); err != nil {
		return LeaveResponse{}, err
	}

	l.TeamID = teamID
	l.Reason = reason
	l.StartDate = startDate
	l.EndDate = endDate
	l.Status = next
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if changed {
		if err := s.enqueueDecision(ctx, tx, actor, *l); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("leave updated", zap.String("leave_id", id), zap.String("status", l.Status.Label()))
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, domain.LeaveStatusApproved)
}

func (s *service) Reject(ctx context.Context, actor Actor, id string) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, domain.LeaveStatusRejected)
}

func (s *service) decide(ctx context.Context, actor Actor, id string, target domain.LeaveStatus) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status == target || !l.Status.CanTransitionTo(target) {
		s.logger.Warn("leave transition rejected",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status.Label()),
			zap.String("to_status", target.Label()),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if err := s.requireLeader(ctx, actor, teamOf(*l)); err != nil {
		return LeaveResponse{}, err
	}

	l.Status = target
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := s.enqueueDecision(ctx, tx, actor, *l); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave decided",
		zap.String("leave_id", id),
		zap.String("status", target.Label()),
		zap.String("decided_by", actor.UserID),
	)
	return mapToResponse(*l), nil
}

func (s *service) enqueueDecision(ctx context.Context, tx *sql.Tx, actor Actor, l LeaveApplication) error {
	if l.UserID == nil {
		return nil
	}
	payload := events.LeaveStatusChangedEvent{
		EventType:   events.LeaveStatusChanged,
		LeaveID:     l.ID.String(),
		ApplicantID: l.UserID.String(),
		Status:      int(l.Status),
		StatusLabel: l.Status.Label(),
		DecidedBy:   actor.UserID,
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		OccurredAt:  time.Now().UTC(),
	}
	return s.enqueue(ctx, tx, l.ID.String(), events.LeaveStatusChanged, payload)
}

// requireLeader passes staff and the leader of teamID.
func (s *service) requireLeader(ctx context.Context, actor Actor, teamID string) error {
	if actor.IsStaff {
		return nil
	}
	if teamID == "" {
		return leaveerrors.ErrNotTeamLeader
	}
	leaderID, err := s.teams.LeaderOf(ctx, teamID)
	if err != nil {
		return err
	}
	if leaderID != actor.UserID {
		return leaveerrors.ErrNotTeamLeader
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("leave deleted", zap.String("leave_id", id))
	return nil
}

func ownedBy(l LeaveApplication, userID string) bool {
	return l.UserID != nil && l.UserID.String() == userID
}

// sameContent reports whether an update would leave the stored fields as they are.
func sameContent(l LeaveApplication, teamID *uuid.UUID, reason string, start, end time.Time) bool {
	sameTeam := (l.TeamID == nil && teamID == nil) ||
		(l.TeamID != nil && teamID != nil && *l.TeamID == *teamID)
	return sameTeam &&
		l.Reason == reason &&
		l.StartDate.Format(dateLayout) == start.Format(dateLayout) &&
		l.EndDate.Format(dateLayout) == end.Format(dateLayout)
}

func teamOf(l LeaveApplication) string {
	if l.TeamID == nil {
		return ""
	}
	return l.TeamID.String()
}

func applicantName(l LeaveApplication) string {
	if l.User != nil {
		return l.User.Username
	}
	if l.UserID != nil {
		return l.UserID.String()
	}
	return ""
}

func mapRepositoryError(err error) error {
	if apperror.IsForeignKeyViolation(err) {
		return leaveerrors.ErrUnknownReference
	}
	return apperror.MapStorageError(err, leaveerrors.ErrLeaveNotFound)
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		Username:    applicantName(l),
		Reason:      l.Reason,
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		Days:        l.Days(),
		Status:      int(l.Status),
		StatusLabel: l.Status.Label(),
		Display:     l.String(),
	}
	if l.UserID != nil {
		v := l.UserID.String()
		resp.UserID = &v
	}
	if l.TeamID != nil {
		v := l.TeamID.String()
		resp.TeamID = &v
	}
	if !l.AppliedDate.IsZero() {
		resp.AppliedDate = l.AppliedDate.Format(time.RFC3339)
	}
	return resp
}
