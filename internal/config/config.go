package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr       string
	StoreBackend   string
	PostgresDSN    string
	RedisAddr      string // kosong = tanpa cache/idempotency
	KafkaBrokers   []string
	ServiceName    string
	WhatsAppNumber string
	LogLevel       string
	NotifyGroup    string
	NotifyWorkers  int
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		StoreBackend:   strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		ServiceName:    getenv("SERVICE_NAME", "pancake-api"),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "254794056800"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		NotifyGroup:    getenv("NOTIFY_GROUP", "pancake-notify"),
		NotifyWorkers:  atoi(os.Getenv("NOTIFY_WORKERS"), 2),
	}
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s or %s)", c.StoreBackend, BackendMemory, BackendPostgres)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
