package kafka

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"go-teamdesk/internal/events"
	"go-teamdesk/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-1")

	evt, err := NewOutboxEvent(ctx, "leave", "leave-1", events.LeaveApplied, events.LeaveLifecycleTopic,
		events.LeaveAppliedEvent{EventType: events.LeaveApplied, LeaveID: "leave-1"})

	assert.NoError(t, err)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "req-1", evt.RequestID)
	assert.Equal(t, OutboxStatusPending, evt.Status)
	assert.Contains(t, string(evt.Payload), `"event_type":"leave_applied"`)
	assert.NoError(t, ValidateOutboxEvent(evt))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: OutboxStatusPending}
	assert.NoError(t, ValidateOutboxEvent(valid))

	missingTopic := valid
	missingTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(missingTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))
}

func TestOutboxRepository_CreateUsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	evt := OutboxEvent{
		ID: "1", AggregateType: "ticket", AggregateID: "t-1", EventType: events.TicketRaised,
		Topic: events.TicketLifecycleTopic, Payload: []byte("{}"), Status: OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(evt.ID, evt.RequestID, evt.AggregateType, evt.AggregateID, evt.EventType, evt.Topic, evt.Payload, evt.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), &sql.TxOptions{})
	assert.NoError(t, err)
	assert.NoError(t, NewOutboxRepository(db).WithTx(tx).Create(context.Background(), evt))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
