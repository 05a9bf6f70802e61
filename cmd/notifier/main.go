package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-pancake-orders/internal/config"
	kafkax "github.com/ariefcatur/go-pancake-orders/internal/kafka"
	"github.com/ariefcatur/go-pancake-orders/internal/logger"
	"github.com/ariefcatur/go-pancake-orders/internal/notify"
	"github.com/ariefcatur/go-pancake-orders/internal/orders"
	"github.com/ariefcatur/go-pancake-orders/internal/redisx"
	"github.com/ariefcatur/go-pancake-orders/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	service := cfg.ServiceName + "-notify"
	log := logger.New(os.Stdout, service, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", slog.Any("error", err))
		os.Exit(1)
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS is required for the notifier")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// catalog untuk nama & emoji flavor
	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("store init", slog.Any("error", err))
		os.Exit(1)
	}
	catalog, err := store.ListFlavors(ctx)
	closeStore()
	if err != nil {
		log.Error("load flavors", slog.Any("error", err))
		os.Exit(1)
	}

	svc := &notify.Service{
		Catalog:        catalog,
		WhatsAppNumber: cfg.WhatsAppNumber,
		ServiceName:    service,
		Log:            log,
	}
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := redisx.Ping(ctx, rdb); err != nil {
			log.Error("redis init", slog.Any("error", err))
			os.Exit(1)
		}
		svc.Redis = rdb
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotifyGroup, orders.TopicOrderCreated, cfg.NotifyWorkers, log)
	done := make(chan error, 1)
	go func() {
		log.Info("notify consumer started",
			slog.String("group", cfg.NotifyGroup),
			slog.String("topic", orders.TopicOrderCreated),
			slog.Int("workers", cfg.NotifyWorkers),
		)
		done <- cons.Start(ctx, svc.HandleOrderCreated)
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		log.Info("shutting down consumer")
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			log.Error("consumer exit", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
