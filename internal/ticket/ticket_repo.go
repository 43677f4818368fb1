package ticket

import (
	"context"
	"database/sql"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=ticket_repo.go -destination=mock/ticket_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *TeamTicket) error
	FindByID(ctx context.Context, id string) (*TeamTicket, error)
	FindAll(ctx context.Context, filter ListFilter) ([]TeamTicket, error)
	Update(ctx context.Context, t *TeamTicket) error
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

// Create selects every column so ticket_status 0 is written explicitly.
func (r *repository) Create(ctx context.Context, t *TeamTicket) error {
	return r.db.WithContext(ctx).Select("*").Omit("TicketType", "RaisedBy").Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TeamTicket, error) {
	var t TeamTicket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Preload("RaisedBy").
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]TeamTicket, error) {
	var out []TeamTicket
	q := r.db.WithContext(ctx).Preload("TicketType").Preload("RaisedBy")
	if filter.TeamID != "" {
		q = q.Where("team_id = ?", filter.TeamID)
	}
	if filter.RaisedBy != "" {
		q = q.Where("raised_by = ?", filter.RaisedBy)
	}
	if filter.UserID != "" {
		// own tickets plus those of teams the user leads, as in GetByID
		q = q.Where(
			"(raised_by = ? OR team_id IN (SELECT id FROM teams WHERE leader_id = ?))",
			filter.UserID, filter.UserID,
		)
	}
	if filter.Status != nil {
		q = q.Where("ticket_status = ?", *filter.Status)
	}
	if filter.OpenOnly {
		q = q.Where("ticket_status IN ?", []domain.TicketStatus{domain.TicketStatusRaised, domain.TicketStatusProcessing})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	err := q.Order("raised_date DESC").Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, t *TeamTicket) error {
	return r.db.WithContext(ctx).Omit("TicketType", "RaisedBy", "RaisedDate").Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&TeamTicket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
