package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hijauloka/orderview/internal/cacheinval"
	"github.com/hijauloka/orderview/internal/config"
	kafkax "github.com/hijauloka/orderview/internal/kafka"
	"github.com/hijauloka/orderview/internal/orders"
	"github.com/hijauloka/orderview/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &cacheinval.Service{Redis: rdb, ServiceName: "cacheinval"}

	consumer := kafkax.NewConsumer(cfg.KafkaBrokers, "order-view-cacheinval", orders.TopicOrderStatusChanged, 4)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("cacheinval consuming", slog.String("topic", orders.TopicOrderStatusChanged))
	if err := consumer.Start(ctx, svc.HandleStatusChanged); err != nil {
		logger.Error("consumer stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
