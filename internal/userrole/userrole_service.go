package userrole

import (
	"context"
	"database/sql"
	"errors"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/shared/apperror"
	userroleerrors "go-teamdesk/internal/userrole/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=userrole_service.go -destination=mock/userrole_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRoleRequest) (UserRoleResponse, error)
	GetAll(ctx context.Context) ([]UserRoleResponse, error)
	GetByID(ctx context.Context, id string) (UserRoleResponse, error)
	GetByUserID(ctx context.Context, userID string) (UserRoleResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRoleRequest) (UserRoleResponse, error)
	Delete(ctx context.Context, id string) error
	RoleOf(ctx context.Context, userID string) (domain.Role, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("userrole.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("userrole.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func parseRole(v *int) (domain.Role, error) {
	if v == nil {
		return domain.RoleUnassigned, nil
	}
	role, err := domain.ParseRole(*v)
	if err != nil {
		return domain.RoleUnassigned, userroleerrors.ErrInvalidRole
	}
	return role, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRoleRequest) (UserRoleResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return UserRoleResponse{}, userroleerrors.ErrInvalidID
	}
	role, err := parseRole(req.Role)
	if err != nil {
		return UserRoleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserRoleResponse{}, err
	}
	defer tx.Rollback()

	ur := &UserRole{ID: uuid.New(), UserID: userID, Role: role}
	if err := s.repo.WithTx(tx).Create(ctx, ur); err != nil {
		s.logger.Warn("create user role failed", zap.String("user_id", req.UserID), zap.Error(err))
		return UserRoleResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return UserRoleResponse{}, err
	}

	s.logger.Info("user role created",
		zap.String("user_id", req.UserID),
		zap.String("role", role.Label()),
	)
	return mapToResponse(*ur), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserRoleResponse, error) {
	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]UserRoleResponse, len(roles))
	for i, r := range roles {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserRoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserRoleResponse{}, userroleerrors.ErrInvalidID
	}
	ur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserRoleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*ur), nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (UserRoleResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return UserRoleResponse{}, userroleerrors.ErrInvalidID
	}
	ur, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return UserRoleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*ur), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRoleRequest) (UserRoleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserRoleResponse{}, userroleerrors.ErrInvalidID
	}
	role, err := parseRole(req.Role)
	if err != nil {
		return UserRoleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserRoleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ur, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserRoleResponse{}, mapRepositoryError(err)
	}
	previous := ur.Role
	ur.Role = role
	if err := qtx.Update(ctx, ur); err != nil {
		return UserRoleResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return UserRoleResponse{}, err
	}

	s.logger.Info("user role changed",
		zap.String("user_id", ur.UserID.String()),
		zap.String("from", previous.Label()),
		zap.String("to", role.Label()),
	)
	return mapToResponse(*ur), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return userroleerrors.ErrInvalidID
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

// RoleOf reports RoleUnassigned for users without a role record.
func (s *service) RoleOf(ctx context.Context, userID string) (domain.Role, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.RoleUnassigned, nil
	}
	ur, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleUnassigned, nil
		}
		return domain.RoleUnassigned, err
	}
	return ur.Role, nil
}

func mapRepositoryError(err error) error {
	if apperror.IsUniqueViolation(err, "uq_user_roles_user_id") {
		return userroleerrors.ErrRoleAlreadyAssigned
	}
	return apperror.MapStorageError(err, userroleerrors.ErrUserRoleNotFound)
}

func mapToResponse(r UserRole) UserRoleResponse {
	resp := UserRoleResponse{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		Role:      r.Role.IntPtr(),
		RoleLabel: r.Role.Label(),
		Display:   r.String(),
	}
	if r.User != nil {
		resp.Username = r.User.Username
	}
	return resp
}
