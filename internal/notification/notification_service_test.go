package notification_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"go-teamdesk/internal/notification"
	notificationerrors "go-teamdesk/internal/notification/errors"
	notificationMock "go-teamdesk/internal/notification/mock"
	"go-teamdesk/internal/shared/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service notification.Service
	repo    *notificationMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	repo := notificationMock.NewMockRepository(ctrl)
	return &serviceDeps{db: db, sqlMock: sqlMock, service: notification.NewService(db, repo), repo: repo}
}

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, notification.CreateNotificationRequest{
			UserID: userID, Title: "Standup", Message: "Moved to 10:00",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Standup", resp.Title)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty message", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, notification.CreateNotificationRequest{UserID: userID, Message: "  "})

		assert.ErrorIs(t, err, notificationerrors.ErrMessageRequired)
	})

	t.Run("title over 50 characters", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, notification.CreateNotificationRequest{
			UserID: userID, Title: strings.Repeat("x", 51), Message: "m",
		})

		assert.ErrorIs(t, err, notificationerrors.ErrTitleTooLong)
	})
}

func TestNotificationService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		id := uuid.New()
		stored := &notification.Notification{ID: id, Title: "Standup", Message: "Moved to 10:00"}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(stored, nil)
		deps.repo.EXPECT().Update(ctx, stored).Return(nil)

		resp, err := deps.service.Update(ctx, id.String(), notification.UpdateNotificationRequest{
			Title: " Standup ", Message: "Moved to 10:30",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Standup", resp.Title)
		assert.Equal(t, "Moved to 10:30", resp.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("title over 50 characters", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, uuid.NewString(), notification.UpdateNotificationRequest{
			Title: strings.Repeat("x", 51), Message: "m",
		})

		assert.ErrorIs(t, err, notificationerrors.ErrTitleTooLong)
	})

	t.Run("empty message", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, uuid.NewString(), notification.UpdateNotificationRequest{Message: " "})

		assert.ErrorIs(t, err, notificationerrors.ErrMessageRequired)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		id := uuid.NewString()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id, notification.UpdateNotificationRequest{Message: "m"})

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})
}

func TestNotificationService_Notify_TruncatesTitle(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, n *notification.Notification) error {
		assert.Equal(t, 50, len([]rune(n.Title)))
		return nil
	})

	_, err := deps.service.Notify(ctx, uuid.New().String(), strings.Repeat("é", 60), "body")

	assert.NoError(t, err)
}

func TestNewMailer_DisabledWithoutHost(t *testing.T) {
	m := notification.NewMailer(config.SMTPConfig{}, zap.NewNop())

	assert.NoError(t, m.Send(context.Background(), "a@example.com", "s", "b"))
}
