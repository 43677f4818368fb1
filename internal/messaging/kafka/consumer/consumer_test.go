package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-teamdesk/internal/events"
	"go-teamdesk/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type sentNotice struct {
	userID, title, message string
}

type fakeNotifier struct {
	sent []sentNotice
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, userID, title, message string) (notification.NotificationResponse, error) {
	if f.err != nil {
		return notification.NotificationResponse{}, f.err
	}
	f.sent = append(f.sent, sentNotice{userID, title, message})
	return notification.NotificationResponse{UserID: userID, Title: title, Message: message}, nil
}

type fakeContacts map[string]string

func (f fakeContacts) EmailOf(ctx context.Context, userID string) (string, error) {
	return f[userID], nil
}

type fakeMailer struct {
	to []string
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	return nil
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return b
}

func TestLifecycleHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("leave applied notifies the leader and mails them", func(t *testing.T) {
		notifier := &fakeNotifier{}
		mailer := &fakeMailer{}
		h := NewLifecycleHandler(notifier, fakeContacts{"leader-1": "lead@example.com"}, mailer, zap.NewNop())

		err := h.Handle(ctx, mustJSON(t, events.LeaveAppliedEvent{
			EventType: events.LeaveApplied, LeaderID: "leader-1", Applicant: "alice",
			StartDate: "2024-03-01", EndDate: "2024-03-02",
		}))

		assert.NoError(t, err)
		assert.Len(t, notifier.sent, 1)
		assert.Equal(t, "leader-1", notifier.sent[0].userID)
		assert.Contains(t, notifier.sent[0].message, "alice applied for leave from 2024-03-01 to 2024-03-02")
		assert.Equal(t, []string{"lead@example.com"}, mailer.to)
	})

	t.Run("ticket status change notifies the raiser", func(t *testing.T) {
		notifier := &fakeNotifier{}
		h := NewLifecycleHandler(notifier, fakeContacts{}, &fakeMailer{}, zap.NewNop())

		err := h.Handle(ctx, mustJSON(t, events.TicketStatusChangedEvent{
			EventType: events.TicketStatusChanged, RaisedBy: "u-1", TicketNumber: "TK-000001",
			StatusLabel: "closed", Comments: "fixed",
		}))

		assert.NoError(t, err)
		assert.Equal(t, "u-1", notifier.sent[0].userID)
		assert.Equal(t, "Ticket TK-000001 closed", notifier.sent[0].title)
		assert.Contains(t, notifier.sent[0].message, "Comments: fixed")
	})

	t.Run("unknown event", func(t *testing.T) {
		h := NewLifecycleHandler(&fakeNotifier{}, nil, nil, zap.NewNop())

		err := h.Handle(ctx, []byte(`{"event_type":"something_else"}`))

		assert.ErrorIs(t, err, ErrUnknownEvent)
	})

	t.Run("malformed payload", func(t *testing.T) {
		h := NewLifecycleHandler(&fakeNotifier{}, nil, nil, zap.NewNop())

		err := h.Handle(ctx, []byte(`not json`))

		assert.ErrorIs(t, err, ErrMalformedEvent)
	})
}

type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

// scriptedHandler returns errs[payload] for the first failures[payload] calls.
type scriptedHandler struct {
	failures map[string]int
	errs     map[string]error
	calls    map[string]int
}

func (h *scriptedHandler) Handle(ctx context.Context, payload []byte) error {
	key := string(payload)
	h.calls[key]++
	if h.calls[key] <= h.failures[key] {
		return h.errs[key]
	}
	return nil
}

func withFastRetry(t *testing.T) {
	prev, prevMax := retryDelay, maxRetryDelay
	retryDelay, maxRetryDelay = time.Millisecond, 2*time.Millisecond
	t.Cleanup(func() { retryDelay, maxRetryDelay = prev, prevMax })
}

func TestConsume_CommitPolicy(t *testing.T) {
	withFastRetry(t)
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 1, Value: []byte("ok")},
			{Offset: 2, Value: []byte("transient")},
			{Offset: 3, Value: []byte("unknown")},
		},
	}
	handler := &scriptedHandler{
		failures: map[string]int{"transient": 2, "unknown": 1000},
		errs: map[string]error{
			"transient": errors.New("db down"),
			"unknown":   ErrUnknownEvent,
		},
		calls: map[string]int{},
	}

	Consume(ctx, reader, handler, zap.NewNop())

	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
	assert.Equal(t, 3, handler.calls["transient"])
	assert.Equal(t, 1, handler.calls["unknown"])
}

func TestConsume_StopsWhileRetrying(t *testing.T) {
	withFastRetry(t)
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 7, Value: []byte("down")},
			{Offset: 8, Value: []byte("ok")},
		},
	}
	handler := &scriptedHandler{
		failures: map[string]int{"down": 1000},
		errs:     map[string]error{"down": errors.New("db down")},
		calls:    map[string]int{},
	}
	time.AfterFunc(20*time.Millisecond, cancel)

	Consume(ctx, reader, handler, zap.NewNop())

	assert.Empty(t, reader.committed)
	assert.Len(t, reader.msgs, 1)
	assert.Zero(t, handler.calls["ok"])
}
