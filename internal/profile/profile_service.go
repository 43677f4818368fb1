package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	profileerrors "go-teamdesk/internal/profile/errors"
	"go-teamdesk/internal/shared/apperror"
	"go-teamdesk/internal/user"
	"go-teamdesk/internal/userrole"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error)
	CreateForCaller(ctx context.Context, userID, username string, fields ProfileFields) (ProfileResponse, error)
	GetAll(ctx context.Context) ([]ProfileResponse, error)
	GetByID(ctx context.Context, id string) (ProfileResponse, error)
	GetByUserID(ctx context.Context, userID string) (ProfileResponse, error)
	EmailOf(ctx context.Context, userID string) (string, error)
	Update(ctx context.Context, id string, req UpdateProfileRequest) (ProfileResponse, error)
	UpdateForCaller(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	userRepo user.Repository
	roleRepo userrole.Repository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	userRepo user.Repository,
	roleRepo userrole.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{db: db, repo: repo, userRepo: userRepo, roleRepo: roleRepo, logger: l}
}

var validate = validator.New()

func normalize(f ProfileFields) (ProfileFields, error) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.Address = strings.TrimSpace(f.Address)
	f.Email = strings.TrimSpace(f.Email)
	if f.Email != "" {
		if err := validate.Var(f.Email, "email"); err != nil {
			return f, profileerrors.ErrInvalidEmail
		}
	}
	return f, nil
}

func apply(p *UserProfile, f ProfileFields) {
	p.FirstName = f.FirstName
	p.LastName = f.LastName
	p.PhoneNumber = f.PhoneNumber
	p.Address = f.Address
	p.Email = f.Email
	p.ProfilePicture = f.ProfilePicture
}

func (s *service) Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidID
	}
	fields, err := normalize(req.ProfileFields)
	if err != nil {
		return ProfileResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	p := &UserProfile{ID: uuid.New(), UserID: userID}
	apply(p, fields)
	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	s.logger.Info("profile created", zap.String("user_id", req.UserID))
	return mapToResponse(*p), nil
}

// CreateForCaller sets up the authenticated user: the local user row, the
// profile, and an unassigned role record when none exists, in one transaction.
func (s *service) CreateForCaller(ctx context.Context, userID, username string, f ProfileFields) (ProfileResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidID
	}
	fields, err := normalize(f)
	if err != nil {
		return ProfileResponse{}, err
	}
	if username == "" {
		username = uid.String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create profile begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	u := &user.User{ID: uid, Username: username}
	if err := s.userRepo.WithTx(tx).Upsert(ctx, u); err != nil {
		s.logger.Error("create profile ensure user failed", zap.Error(err))
		return ProfileResponse{}, apperror.MapStorageError(err, nil)
	}

	p := &UserProfile{ID: uuid.New(), UserID: uid}
	apply(p, fields)
	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	rtx := s.roleRepo.WithTx(tx)
	if _, err := rtx.FindByUserID(ctx, userID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, err
		}
		if err := rtx.Create(ctx, userrole.NewUnassigned(uid)); err != nil {
			s.logger.Error("create profile role record failed", zap.Error(err))
			return ProfileResponse{}, apperror.MapStorageError(err, nil)
		}
	}

	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	p.User = u
	s.logger.Info("profile set up for caller", zap.String("user_id", userID))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProfileResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (ProfileResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidID
	}
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

// EmailOf returns the profile e-mail, or "" when the user has no profile.
func (s *service) EmailOf(ctx context.Context, userID string) (string, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return p.Email, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProfileRequest) (ProfileResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidID
	}
	return s.update(ctx, func(r Repository) (*UserProfile, error) { return r.FindByID(ctx, id) }, req)
}

func (s *service) UpdateForCaller(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidID
	}
	return s.update(ctx, func(r Repository) (*UserProfile, error) { return r.FindByUserID(ctx, userID) }, req)
}

func (s *service) update(ctx context.Context, find func(Repository) (*UserProfile, error), req UpdateProfileRequest) (ProfileResponse, error) {
	fields, err := normalize(req.ProfileFields)
	if err != nil {
		return ProfileResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := find(qtx)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	apply(p, fields)
	if err := qtx.Update(ctx, p); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return profileerrors.ErrInvalidID
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

func mapRepositoryError(err error) error {
	if apperror.IsUniqueViolation(err, "uq_user_profiles_user_id") {
		return profileerrors.ErrProfileAlreadyExists
	}
	return apperror.MapStorageError(err, profileerrors.ErrProfileNotFound)
}

func mapToResponse(p UserProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:             p.ID.String(),
		UserID:         p.UserID.String(),
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		PhoneNumber:    p.PhoneNumber,
		Address:        p.Address,
		Email:          p.Email,
		ProfilePicture: p.ProfilePicture,
		Display:        p.String(),
	}
	if p.User != nil {
		resp.Username = p.User.Username
	}
	return resp
}
