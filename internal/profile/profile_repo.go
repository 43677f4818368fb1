package profile

import (
	"context"
	"database/sql"

	"go-teamdesk/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *UserProfile) error
	FindByID(ctx context.Context, id string) (*UserProfile, error)
	FindByUserID(ctx context.Context, userID string) (*UserProfile, error)
	FindAll(ctx context.Context) ([]UserProfile, error)
	Update(ctx context.Context, p *UserProfile) error
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

func (r *repository) Create(ctx context.Context, p *UserProfile) error {
	return r.db.WithContext(ctx).Omit("User").Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*UserProfile, error) {
	var p UserProfile
	err := r.db.WithContext(ctx).Preload("User").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*UserProfile, error) {
	var p UserProfile
	err := r.db.WithContext(ctx).Preload("User").First(&p, "user_id = ?", userID).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]UserProfile, error) {
	var profiles []UserProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("last_name ASC, first_name ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) Update(ctx context.Context, p *UserProfile) error {
	res := r.db.WithContext(ctx).
		Model(&UserProfile{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"first_name":      p.FirstName,
			"last_name":       p.LastName,
			"phone_number":    p.PhoneNumber,
			"address":         p.Address,
			"email":           p.Email,
			"profile_picture": p.ProfilePicture,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&UserProfile{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
