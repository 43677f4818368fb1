package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-teamdesk/internal/events"
	"go-teamdesk/internal/messaging/kafka/consumer"
	"go-teamdesk/internal/notification"
	"go-teamdesk/internal/profile"
	"go-teamdesk/internal/shared/config"
	"go-teamdesk/internal/shared/connection"
	"go-teamdesk/internal/user"
	"go-teamdesk/internal/userrole"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns leave and ticket lifecycle events into notifications
// until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(sqlDB, notificationRepo)
	profileService := profile.NewService(
		sqlDB,
		profile.NewRepository(gormDB),
		user.NewRepository(gormDB),
		userrole.NewRepository(gormDB),
	)
	mailer := notification.NewMailer(cfg.SMTP, logger)
	handler := consumer.NewLifecycleHandler(notificationService, profileService, mailer, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		GroupID:        cfg.Kafka.GroupID,
		GroupTopics:    []string{events.LeaveLifecycleTopic, events.TicketLifecycleTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Consume(ctx, reader, handler, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
