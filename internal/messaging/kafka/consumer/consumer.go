package consumer

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	ErrMalformedEvent = errors.New("malformed lifecycle event")
	ErrUnknownEvent   = errors.New("unknown lifecycle event")
)

// Pause before a failed message is handled again; doubles per attempt.
var (
	retryDelay    = time.Second
	maxRetryDelay = 30 * time.Second
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// MessageHandler processes one message payload.
type MessageHandler interface {
	Handle(ctx context.Context, payload []byte) error
}

// Consume reads until ctx is cancelled. Messages that can never succeed are
// committed and skipped. A transient failure is retried on the same message
// before the next fetch, since a later commit would also cover its offset.
func Consume(ctx context.Context, reader MessageReader, handler MessageHandler, logger *zap.Logger) {
	log := logger.Named("kafka.consumer")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handleWithRetry(ctx, handler, msg, log); err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped", zap.Int64("uncommitted_offset", msg.Offset))
				return
			}
			log.Warn("skipping lifecycle message",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}
	}
}

// handleWithRetry returns nil, a permanent event error, or ctx.Err().
func handleWithRetry(ctx context.Context, handler MessageHandler, msg kafkago.Message, log *zap.Logger) error {
	delay := retryDelay
	for {
		err := handler.Handle(ctx, msg.Value)
		if err == nil || errors.Is(err, ErrMalformedEvent) || errors.Is(err, ErrUnknownEvent) {
			return err
		}
		log.Error("handle lifecycle message failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}
}
