package team

import (
	"context"
	"database/sql"
	"strings"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/shared/apperror"
	"go-teamdesk/internal/shared/config"
	teamerrors "go-teamdesk/internal/team/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleLookup resolves a user's stored role; missing records are
// domain.RoleUnassigned.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (domain.Role, error)
}

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context) ([]TeamResponse, error)
	GetByID(ctx context.Context, id string) (TeamResponse, error)
	GetForUser(ctx context.Context, userID string) ([]TeamResponse, error)
	Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error)
	AddMembers(ctx context.Context, id string, req MembersRequest) (TeamResponse, error)
	RemoveMember(ctx context.Context, id, userID string) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	LeaderOf(ctx context.Context, teamID string) (string, error)
	Delete(ctx context.Context, id string) error
}

type Options struct {
	// LeaderRolePolicy is config.LeaderRoleStrict or config.LeaderRoleLegacy.
	LeaderRolePolicy string
}

type service struct {
	db     *sql.DB
	repo   Repository
	roles  RoleLookup
	opts   Options
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, roles RoleLookup, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	if opts.LeaderRolePolicy != config.LeaderRoleLegacy {
		opts.LeaderRolePolicy = config.LeaderRoleStrict
	}
	return &service{db: db, repo: repo, roles: roles, opts: opts, logger: l}
}

// checkLeader requires the leader to hold the Team Leader role. In legacy
// mode a violation is only logged.
func (s *service) checkLeader(ctx context.Context, leaderID string) error {
	role, err := s.roles.RoleOf(ctx, leaderID)
	if err != nil {
		return err
	}
	if role == domain.RoleTeamLeader {
		return nil
	}
	if s.opts.LeaderRolePolicy == config.LeaderRoleLegacy {
		s.logger.Warn("team leader does not hold the team leader role",
			zap.String("leader_id", leaderID),
			zap.String("role", role.Label()),
		)
		return nil
	}
	return teamerrors.ErrInvalidLeaderRole
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, teamerrors.ErrInvalidID
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *service) Create(ctx context.Context, req CreateTeamRequest) (TeamResponse, error) {
	leaderID, err := uuid.Parse(req.LeaderID)
	if err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidID
	}
	memberIDs, err := parseIDs(req.MemberIDs)
	if err != nil {
		return TeamResponse{}, err
	}
	if err := s.checkLeader(ctx, req.LeaderID); err != nil {
		return TeamResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create team begin tx failed", zap.Error(err))
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t := &Team{
		ID:       uuid.New(),
		TeamName: strings.TrimSpace(req.TeamName),
		LeaderID: leaderID,
	}
	if err := qtx.Create(ctx, t); err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}
	if len(memberIDs) > 0 {
		if err := qtx.AddMembers(ctx, t, memberIDs); err != nil {
			return TeamResponse{}, mapRepositoryError(err)
		}
	}
	created, err := qtx.FindByID(ctx, t.ID.String())
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	s.logger.Info("team created",
		zap.String("team_id", t.ID.String()),
		zap.String("leader_id", req.LeaderID),
		zap.Int("members", len(memberIDs)),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context) ([]TeamResponse, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(teams), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidID
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*t), nil
}

func (s *service) GetForUser(ctx context.Context, userID string) ([]TeamResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, teamerrors.ErrInvalidID
	}
	teams, err := s.repo.FindForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapAll(teams), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidID
	}
	leaderID, err := uuid.Parse(req.LeaderID)
	if err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidID
	}
	memberIDs, err := parseIDs(req.MemberIDs)
	if err != nil {
		return TeamResponse{}, err
	}
	if err := s.checkLeader(ctx, req.LeaderID); err != nil {
		return TeamResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}
	t.TeamName = strings.TrimSpace(req.TeamName)
	t.LeaderID = leaderID
	if err := qtx.Update(ctx, t); err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}
	if req.MemberIDs != nil {
		if err := qtx.ReplaceMembers(ctx, t, memberIDs); err != nil {
			return TeamResponse{}, mapRepositoryError(err)
		}
	}
	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	s.logger.Info("team updated", zap.String("team_id", id))
	return mapToResponse(*updated), nil
}

func (s *service) AddMembers(ctx context.Context, id string, req MembersRequest) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidID
	}
	memberIDs, err := parseIDs(req.UserIDs)
	if err != nil {
		return TeamResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}

	existing := make(map[uuid.UUID]struct{}, len(t.Members))
	for _, m := range t.Members {
		existing[m.ID] = struct{}{}
	}
	fresh := make([]uuid.UUID, 0, len(memberIDs))
	for _, m := range memberIDs {
		if _, ok := existing[m]; !ok {
			fresh = append(fresh, m)
		}
	}
	if len(fresh) > 0 {
		if err := qtx.AddMembers(ctx, t, fresh); err != nil {
			return TeamResponse{}, mapRepositoryError(err)
		}
	}
	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}
	return mapToResponse(*updated), nil
}

func (s *service) RemoveMember(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return teamerrors.ErrInvalidID
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return teamerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.RemoveMember(ctx, t, uid); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func (s *service) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	return s.repo.IsMember(ctx, teamID, userID)
}

func (s *service) LeaderOf(ctx context.Context, teamID string) (string, error) {
	t, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	return t.LeaderID.String(), nil
}

// Delete removes the team together with its leave applications, calendar
// events and tickets.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return teamerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteOwned(ctx, id); err != nil {
		s.logger.Error("delete team owned rows failed", zap.String("team_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("team deleted", zap.String("team_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if apperror.IsForeignKeyViolation(err) {
		return teamerrors.ErrUnknownUser
	}
	return apperror.MapStorageError(err, teamerrors.ErrTeamNotFound)
}

func mapAll(teams []Team) []TeamResponse {
	resp := make([]TeamResponse, len(teams))
	for i, t := range teams {
		resp[i] = mapToResponse(t)
	}
	return resp
}

func mapToResponse(t Team) TeamResponse {
	resp := TeamResponse{
		ID:       t.ID.String(),
		TeamName: t.TeamName,
		LeaderID: t.LeaderID.String(),
		Members:  make([]MemberResponse, len(t.Members)),
	}
	if t.Leader != nil {
		resp.LeaderName = t.Leader.Username
	}
	for i, m := range t.Members {
		resp.Members[i] = MemberResponse{ID: m.ID.String(), Username: m.Username}
	}
	return resp
}
