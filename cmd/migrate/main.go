package main

import (
	"context"
	"flag"
	"time"

	"go-teamdesk/internal/migrations"
	"go-teamdesk/internal/shared/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	timeout := flag.Duration("timeout", time.Minute, "command timeout")
	target := flag.Int64("target", 0, "target version for down command (optional)")
	flag.Parse()

	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	runner, err := migrations.Open(cfg.DB.DSN(), logger)
	if err != nil {
		logger.Fatal("configure migration runner failed", zap.Error(err))
	}
	defer runner.Close()

	switch *command {
	case "up":
		err = runner.Up(ctx)
	case "status":
		err = runner.Status(ctx)
	case "down":
		err = runner.Down(ctx, *target)
	default:
		logger.Fatal("unsupported command", zap.String("command", *command))
	}
	if err != nil {
		logger.Fatal("migration command failed", zap.String("command", *command), zap.Error(err))
	}

	logger.Info("migration command completed", zap.String("command", *command))
}
