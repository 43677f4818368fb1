package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var FS embed.FS

const dir = "sql"

// Runner applies the embedded schema migrations with goose.
type Runner struct {
	db      *sql.DB
	timeout time.Duration
	log     *zap.Logger
}

// Open connects through the pgx stdlib driver and returns a Runner that owns
// the connection.
func Open(dsn string, log *zap.Logger) (Runner, error) {
	if dsn == "" {
		return Runner{}, errors.New("empty database dsn")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return Runner{}, fmt.Errorf("open sql connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return Runner{}, fmt.Errorf("ping sql connection: %w", err)
	}
	return New(db, log)
}

func New(db *sql.DB, log *zap.Logger) (Runner, error) {
	if db == nil {
		return Runner{}, errors.New("nil database provided")
	}
	if log == nil {
		log = zap.L()
	}
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return Runner{}, fmt.Errorf("configure goose: %w", err)
	}
	return Runner{db: db, timeout: time.Minute, log: log.Named("migrations")}, nil
}

// Up applies pending migrations.
func (r Runner) Up(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.log.Info("applying migrations")
	if err := goose.UpContext(ctx, r.db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	r.log.Info("migrations applied")
	return nil
}

func (r Runner) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, r.db, dir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Down rolls back one migration, or down to target when target > 0.
func (r Runner) Down(ctx context.Context, target int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if target > 0 {
		r.log.Info("rolling back migrations", zap.Int64("target", target))
		if err := goose.DownToContext(ctx, r.db, dir, target); err != nil {
			return fmt.Errorf("rollback to version %d: %w", target, err)
		}
		return nil
	}

	r.log.Info("rolling back latest migration")
	if err := goose.DownContext(ctx, r.db, dir); err != nil {
		return fmt.Errorf("rollback latest migration: %w", err)
	}
	return nil
}

func (r Runner) Close() error {
	return r.db.Close()
}
