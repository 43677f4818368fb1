package tickettype_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-teamdesk/internal/tickettype"
	tickettypeerrors "go-teamdesk/internal/tickettype/errors"
	tickettypeMock "go-teamdesk/internal/tickettype/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	redismock redismock.ClientMock
	service   tickettype.Service
	repo      *tickettypeMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()
	repo := tickettypeMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		redismock: redisMock,
		service:   tickettype.NewService(db, repo, rdb),
		repo:      repo,
	}
}

func TestTicketTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("active defaults to true and cache is invalidated", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tt *tickettype.TicketType) error {
			assert.True(t, tt.Active)
			return nil
		})
		deps.redismock.ExpectDel(tickettype.ActiveCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, tickettype.CreateTicketTypeRequest{Name: " VPN access ", Description: "Remote access"})

		assert.NoError(t, err)
		assert.Equal(t, "VPN access", resp.Name)
		assert.True(t, resp.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("explicit inactive", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		inactive := false

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(tickettype.ActiveCacheKey).SetVal(0)

		resp, err := deps.service.Create(ctx, tickettype.CreateTicketTypeRequest{Name: "Legacy", Active: &inactive})

		assert.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("name longer than 30", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, tickettype.CreateTicketTypeRequest{Name: "0123456789012345678901234567890"})

		assert.ErrorIs(t, err, tickettypeerrors.ErrNameTooLong)
	})
}

func TestTicketTypeService_GetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := []tickettype.TicketTypeResponse{{ID: uuid.NewString(), Name: "Hardware", Active: true}}
		data, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(tickettype.ActiveCacheKey).SetVal(string(data))
		deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Times(0)

		resp, err := deps.service.GetActive(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		rows := []tickettype.TicketType{{ID: id, Name: "Software", Active: true}}
		want := []tickettype.TicketTypeResponse{{ID: id.String(), Name: "Software", Active: true}}
		data, _ := json.Marshal(want)

		deps.redismock.ExpectGet(tickettype.ActiveCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any(), true).Return(rows, nil)
		deps.redismock.ExpectSet(tickettype.ActiveCacheKey, data, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetActive(ctx)

		assert.NoError(t, err)
		assert.Equal(t, want, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(tickettype.ActiveCacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any(), true).Return(nil, errors.New("connection lost"))

		resp, err := deps.service.GetActive(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestTicketTypeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found keeps the cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()
		id := uuid.NewString()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, id)

		assert.ErrorIs(t, err, tickettypeerrors.ErrTicketTypeNotFound)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}
