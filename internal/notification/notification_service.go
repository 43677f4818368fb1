package notification

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	notificationerrors "go-teamdesk/internal/notification/errors"
	"go-teamdesk/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxTitleLength = 50

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	Notify(ctx context.Context, userID, title, message string) (NotificationResponse, error)
	GetAll(ctx context.Context) ([]NotificationResponse, error)
	GetForUser(ctx context.Context, userID string, limit int) ([]NotificationResponse, error)
	GetByID(ctx context.Context, id string) (NotificationResponse, error)
	Update(ctx context.Context, id string, req UpdateNotificationRequest) (NotificationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	if utf8.RuneCountInString(req.Title) > maxTitleLength {
		return NotificationResponse{}, notificationerrors.ErrTitleTooLong
	}
	return s.create(ctx, req.UserID, req.Title, req.Message)
}

// Notify is used by background producers; an over-long title is shortened
// instead of rejected.
func (s *service) Notify(ctx context.Context, userID, title, message string) (NotificationResponse, error) {
	return s.create(ctx, userID, truncate(title, maxTitleLength), message)
}

func (s *service) create(ctx context.Context, userID, title, message string) (NotificationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidID
	}
	if strings.TrimSpace(message) == "" {
		return NotificationResponse{}, notificationerrors.ErrMessageRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NotificationResponse{}, err
	}
	defer tx.Rollback()

	n := &Notification{ID: uuid.New(), UserID: uid, Title: strings.TrimSpace(title), Message: message}
	if err := s.repo.WithTx(tx).Create(ctx, n); err != nil {
		s.logger.Error("create notification failed", zap.String("user_id", userID), zap.Error(err))
		return NotificationResponse{}, apperror.MapStorageError(err, nil)
	}
	if err := tx.Commit(); err != nil {
		return NotificationResponse{}, err
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.logger.Debug("notification created", zap.String("user_id", userID), zap.String("title", n.Title))
	return mapToResponse(*n), nil
}

func (s *service) GetAll(ctx context.Context) ([]NotificationResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(items), nil
}

func (s *service) GetForUser(ctx context.Context, userID string, limit int) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, notificationerrors.ErrInvalidID
	}
	items, err := s.repo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return mapAll(items), nil
}

func (s *service) GetByID(ctx context.Context, id string) (NotificationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidID
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return NotificationResponse{}, apperror.MapStorageError(err, notificationerrors.ErrNotificationNotFound)
	}
	return mapToResponse(*n), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateNotificationRequest) (NotificationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidID
	}
	if utf8.RuneCountInString(req.Title) > maxTitleLength {
		return NotificationResponse{}, notificationerrors.ErrTitleTooLong
	}
	if strings.TrimSpace(req.Message) == "" {
		return NotificationResponse{}, notificationerrors.ErrMessageRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NotificationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	n, err := qtx.FindByID(ctx, id)
	if err != nil {
		return NotificationResponse{}, apperror.MapStorageError(err, notificationerrors.ErrNotificationNotFound)
	}
	n.Title = strings.TrimSpace(req.Title)
	n.Message = req.Message
	if err := qtx.Update(ctx, n); err != nil {
		s.logger.Error("update notification failed", zap.String("notification_id", id), zap.Error(err))
		return NotificationResponse{}, apperror.MapStorageError(err, notificationerrors.ErrNotificationNotFound)
	}
	if err := tx.Commit(); err != nil {
		return NotificationResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidID
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return apperror.MapStorageError(err, notificationerrors.ErrNotificationNotFound)
	}
	return tx.Commit()
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func mapAll(items []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
