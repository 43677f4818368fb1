package calendar

import (
	"context"
	"database/sql"

	"go-teamdesk/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_repo.go -destination=mock/calendar_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *CalendarEvent) error
	FindByID(ctx context.Context, id string) (*CalendarEvent, error)
	FindAll(ctx context.Context, filter ListFilter) ([]CalendarEvent, error)
	Update(ctx context.Context, e *CalendarEvent) error
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

func (r *repository) Create(ctx context.Context, e *CalendarEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*CalendarEvent, error) {
	var e CalendarEvent
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]CalendarEvent, error) {
	var out []CalendarEvent
	q := r.db.WithContext(ctx)
	if filter.TeamID != "" {
		q = q.Where("team_id = ?", filter.TeamID)
	}
	if filter.UserID != "" {
		q = q.Where(
			"(team_id IN (SELECT team_id FROM team_members WHERE user_id = ?) OR team_id IN (SELECT id FROM teams WHERE leader_id = ?))",
			filter.UserID, filter.UserID,
		)
	}
	if filter.From != nil {
		q = q.Where("start_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("start_at < ?", *filter.To)
	}
	err := q.Order("start_at ASC").Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, e *CalendarEvent) error {
	return r.db.WithContext(ctx).Omit("CreatedAt").Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&CalendarEvent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
