package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hijauloka/orderview/internal/config"
	"github.com/hijauloka/orderview/internal/httpx"
	"github.com/hijauloka/orderview/internal/orders"
	"github.com/hijauloka/orderview/internal/postgres"
	"github.com/hijauloka/orderview/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("db connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Repo + probe skema sekali di awal (varian alamat, kolom midtrans)
	repo, err := orders.NewRepo(ctx, db)
	if err != nil {
		logger.Error("repo init", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("schema capabilities",
		slog.Bool("address_link_table", repo.Caps.AddressLinkTable),
		slog.Bool("address_fk", repo.Caps.AddressFK),
		slog.Bool("midtrans_column", repo.Caps.MidtransColumn),
	)

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	asm := &orders.Assembler{
		Store:          repo,
		PaymentBaseURL: cfg.PaymentBaseURL,
		AssetBaseURL:   cfg.AssetBaseURL,
	}

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{Views: asm, Redis: rdb, Log: logger}
	oh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		logger.Info("HTTP listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
