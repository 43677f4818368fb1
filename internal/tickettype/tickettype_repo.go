package tickettype

import (
	"context"
	"database/sql"

	"go-teamdesk/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tickettype_repo.go -destination=mock/tickettype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *TicketType) error
	FindByID(ctx context.Context, id string) (*TicketType, error)
	FindAll(ctx context.Context, activeOnly bool) ([]TicketType, error)
	Update(ctx context.Context, t *TicketType) error
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

// Create selects every column so an explicit Active=false is not replaced by
// the column default.
func (r *repository) Create(ctx context.Context, t *TicketType) error {
	return r.db.WithContext(ctx).Select("*").Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TicketType, error) {
	var t TicketType
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]TicketType, error) {
	var out []TicketType
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, t *TicketType) error {
	return r.db.WithContext(ctx).Omit("CreatedAt").Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&TicketType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
