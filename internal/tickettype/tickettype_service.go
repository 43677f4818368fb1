package tickettype

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go-teamdesk/internal/shared/apperror"
	tickettypeerrors "go-teamdesk/internal/tickettype/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ActiveCacheKey = "ticket_types:active"
	activeCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=tickettype_service.go -destination=mock/tickettype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTicketTypeRequest) (TicketTypeResponse, error)
	GetAll(ctx context.Context) ([]TicketTypeResponse, error)
	GetActive(ctx context.Context) ([]TicketTypeResponse, error)
	GetByID(ctx context.Context, id string) (TicketTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateTicketTypeRequest) (TicketTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the catalog service. rdb may be nil, which disables the
// active-types cache.
func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("tickettype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tickettype.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func validateName(v string) (string, error) {
	name := strings.TrimSpace(v)
	if name == "" {
		return "", tickettypeerrors.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > 30 {
		return "", tickettypeerrors.ErrNameTooLong
	}
	return name, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveCacheKey).Err(); err != nil {
		s.logger.Error("invalidate ticket type cache failed", zap.String("key", ActiveCacheKey), zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, req CreateTicketTypeRequest) (TicketTypeResponse, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return TicketTypeResponse{}, err
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TicketTypeResponse{}, err
	}
	defer tx.Rollback()

	t := &TicketType{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		Active:      active,
	}
	if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
		return TicketTypeResponse{}, apperror.MapStorageError(err, tickettypeerrors.ErrTicketTypeNotFound)
	}
	if err := tx.Commit(); err != nil {
		return TicketTypeResponse{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("ticket type created", zap.String("ticket_type_id", t.ID.String()), zap.String("name", name))
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TicketTypeResponse, error) {
	types, err := s.repo.FindAll(ctx, false)
	if err != nil {
		return nil, err
	}
	return mapAll(types), nil
}

// GetActive serves the active catalog from Redis, collapsing concurrent
// misses into one query.
func (s *service) GetActive(ctx context.Context) ([]TicketTypeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, ActiveCacheKey).Result()
		if err == nil {
			var resp []TicketTypeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read ticket type cache failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(ActiveCacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx, true)
		if err != nil {
			return nil, err
		}
		resp := mapAll(types)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, ActiveCacheKey, data, activeCacheTTL).Err(); err != nil {
					s.logger.Warn("write ticket type cache failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]TicketTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TicketTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TicketTypeResponse{}, tickettypeerrors.ErrInvalidID
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TicketTypeResponse{}, apperror.MapStorageError(err, tickettypeerrors.ErrTicketTypeNotFound)
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTicketTypeRequest) (TicketTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TicketTypeResponse{}, tickettypeerrors.ErrInvalidID
	}
	name, err := validateName(req.Name)
	if err != nil {
		return TicketTypeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TicketTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TicketTypeResponse{}, apperror.MapStorageError(err, tickettypeerrors.ErrTicketTypeNotFound)
	}
	t.Name = name
	t.Description = req.Description
	if req.Active != nil {
		t.Active = *req.Active
	}
	if err := qtx.Update(ctx, t); err != nil {
		return TicketTypeResponse{}, apperror.MapStorageError(err, tickettypeerrors.ErrTicketTypeNotFound)
	}
	if err := tx.Commit(); err != nil {
		return TicketTypeResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*t), nil
}

// Delete removes the type; tickets of that type go with it.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return tickettypeerrors.ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return apperror.MapStorageError(err, tickettypeerrors.ErrTicketTypeNotFound)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("ticket type deleted", zap.String("ticket_type_id", id))
	return nil
}

func mapAll(types []TicketType) []TicketTypeResponse {
	resp := make([]TicketTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapToResponse(t)
	}
	return resp
}

func mapToResponse(t TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Active:      t.Active,
	}
}
