package counter

import (
	"context"
	"database/sql"

	"go-teamdesk/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, teamID string, counterType string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, teamID string, counterType string) (int64, error) {
	var nextValue int64

	// Single statement upsert so concurrent callers never share a value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO team_counters (team_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (team_id, counter_type) DO UPDATE
		SET last_value = team_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, teamID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
