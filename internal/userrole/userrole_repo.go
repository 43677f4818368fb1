package userrole

import (
	"context"
	"database/sql"

	"go-teamdesk/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=userrole_repo.go -destination=mock/userrole_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *UserRole) error
	FindByID(ctx context.Context, id string) (*UserRole, error)
	FindByUserID(ctx context.Context, userID string) (*UserRole, error)
	FindAll(ctx context.Context) ([]UserRole, error)
	Update(ctx context.Context, r *UserRole) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, ur *UserRole) error {
	return r.db.WithContext(ctx).Omit("User").Create(ur).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*UserRole, error) {
	var ur UserRole
	err := r.db.WithContext(ctx).Preload("User").First(&ur, "id = ?", id).Error
	return &ur, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*UserRole, error) {
	var ur UserRole
	err := r.db.WithContext(ctx).Preload("User").First(&ur, "user_id = ?", userID).Error
	return &ur, err
}

func (r *repository) FindAll(ctx context.Context) ([]UserRole, error) {
	var roles []UserRole
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at ASC").
		Find(&roles).Error
	return roles, err
}

// Update writes the role column explicitly so that clearing it stores NULL.
func (r *repository) Update(ctx context.Context, ur *UserRole) error {
	res := r.db.WithContext(ctx).
		Model(&UserRole{}).
		Where("id = ?", ur.ID).
		Update("role", ur.Role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&UserRole{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
