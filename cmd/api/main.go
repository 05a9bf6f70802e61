package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-pancake-orders/internal/config"
	"github.com/ariefcatur/go-pancake-orders/internal/httpx"
	kafkax "github.com/ariefcatur/go-pancake-orders/internal/kafka"
	"github.com/ariefcatur/go-pancake-orders/internal/logger"
	"github.com/ariefcatur/go-pancake-orders/internal/orders"
	"github.com/ariefcatur/go-pancake-orders/internal/redisx"
	"github.com/ariefcatur/go-pancake-orders/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.ServiceName, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error("store init", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	oh := &httpx.OrdersHandler{
		Store:          store,
		Service:        cfg.ServiceName,
		WhatsAppNumber: cfg.WhatsAppNumber,
		Log:            log,
	}

	// Redis (opsional)
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := redisx.Ping(ctx, rdb); err != nil {
			log.Error("redis init", slog.Any("error", err))
			os.Exit(1)
		}
		oh.Cache = redisx.NewOrderCache(rdb)
	}

	// Kafka producer (opsional)
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, log)
		prod.Start()
		oh.Publisher = prod
	}

	router := httpx.NewRouter(log)
	oh.Register(router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http listening", slog.String("addr", cfg.HTTPAddr), slog.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", slog.Any("error", err))
			cancel()
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close() // flush sisa inbox
		drainCtx, cancelDrain := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelDrain()
		if err := prod.WaitClosed(drainCtx); err != nil {
			log.Warn("kafka drain timed out", slog.Any("error", err))
		}
	}
}
