package ticket_test

import (
	"context"
	"regexp"
	"testing"

	"go-teamdesk/internal/ticket"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTicketRepository_FindAll_UserScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{Logger: logger.Discard})
	assert.NoError(t, err)

	caller := uuid.NewString()
	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE (raised_by = $1 OR team_id IN (SELECT id FROM teams WHERE leader_id = $2))`,
	)).WithArgs(caller, caller).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	out, err := ticket.NewRepository(gdb).FindAll(context.Background(), ticket.ListFilter{UserID: caller})

	assert.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
