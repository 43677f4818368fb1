package userrole_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/user"
	"go-teamdesk/internal/userrole"
	userroleerrors "go-teamdesk/internal/userrole/errors"
	userroleMock "go-teamdesk/internal/userrole/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service userrole.Service
	repo    *userroleMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	repo := userroleMock.NewMockRepository(ctrl)
	return &serviceDeps{db: db, sqlMock: sqlMock, service: userrole.NewService(db, repo), repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func intPtr(v int) *int { return &v }

func TestUserRoleService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("without role creates unassigned record", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *userrole.UserRole) error {
			assert.Equal(t, domain.RoleUnassigned, r.Role)
			return nil
		})

		resp, err := deps.service.Create(ctx, userrole.CreateUserRoleRequest{UserID: userID})

		assert.NoError(t, err)
		assert.Nil(t, resp.Role)
		assert.Equal(t, "Unassigned", resp.RoleLabel)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("team leader", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, userrole.CreateUserRoleRequest{UserID: userID, Role: intPtr(0)})

		assert.NoError(t, err)
		assert.Equal(t, 0, *resp.Role)
		assert.Equal(t, "Team Leader", resp.RoleLabel)
	})

	t.Run("out of range value is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, userrole.CreateUserRoleRequest{UserID: userID, Role: intPtr(2)})

		assert.ErrorIs(t, err, userroleerrors.ErrInvalidRole)
	})

	t.Run("second record for same user conflicts", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_roles_user_id"})

		_, err := deps.service.Create(ctx, userrole.CreateUserRoleRequest{UserID: userID, Role: intPtr(1)})

		assert.ErrorIs(t, err, userroleerrors.ErrRoleAlreadyAssigned)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestUserRoleService_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()
	id := uuid.New()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&userrole.UserRole{
		ID:   id,
		Role: domain.RoleUnassigned,
		User: &user.User{Username: "alice"},
	}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *userrole.UserRole) error {
		assert.Equal(t, domain.RoleTeamLeader, r.Role)
		return nil
	})

	resp, err := deps.service.Update(ctx, id.String(), userrole.UpdateUserRoleRequest{Role: intPtr(0)})

	assert.NoError(t, err)
	assert.Equal(t, "alice - Team Leader", resp.Display)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestUserRoleService_RoleOf(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	defer deps.db.Close()
	userID := uuid.New().String()

	t.Run("stored role", func(t *testing.T) {
		deps.repo.EXPECT().FindByUserID(ctx, userID).Return(&userrole.UserRole{Role: domain.RoleTeamMember}, nil)

		role, err := deps.service.RoleOf(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleTeamMember, role)
	})

	t.Run("no record is unassigned", func(t *testing.T) {
		deps.repo.EXPECT().FindByUserID(ctx, userID).Return(&userrole.UserRole{}, gorm.ErrRecordNotFound)

		role, err := deps.service.RoleOf(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleUnassigned, role)
	})

	t.Run("storage failure", func(t *testing.T) {
		deps.repo.EXPECT().FindByUserID(ctx, userID).Return(nil, errors.New("db down"))

		_, err := deps.service.RoleOf(ctx, userID)

		assert.Error(t, err)
	})
}

func TestUserRole_String(t *testing.T) {
	r := userrole.UserRole{Role: domain.RoleTeamMember, User: &user.User{Username: "bob"}}
	assert.Equal(t, "bob - Team Member", r.String())
}
