package producer

import (
	"context"
	"errors"
	"testing"

	"go-teamdesk/internal/messaging/kafka"
	outboxMock "go-teamdesk/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	fail    map[string]bool
	written []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.fail[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := outboxMock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{fail: map[string]bool{"agg-2": true}}

	pending := []kafka.OutboxEvent{
		{ID: "1", AggregateID: "agg-1", EventType: "leave_applied", Topic: "leave", Payload: []byte("{}"), RequestID: "req-1"},
		{ID: "2", AggregateID: "agg-2", EventType: "ticket_raised", Topic: "ticket", Payload: []byte("{}")},
	}

	repo.EXPECT().ListPending(ctx, batchSize).Return(pending, nil)
	repo.EXPECT().MarkSent(ctx, "1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "2", "broker unavailable").Return(nil)

	sent, err := ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, writer.written, 1)
	assert.Equal(t, "leave", writer.written[0].Topic)

	var sawRequestID bool
	for _, h := range writer.written[0].Headers {
		if h.Key == "request_id" && string(h.Value) == "req-1" {
			sawRequestID = true
		}
	}
	assert.True(t, sawRequestID)
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := outboxMock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

	_, err := ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

	assert.Error(t, err)
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxMock.NewMockOutboxRepository(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 0)
		close(done)
	}()
	<-done
}
