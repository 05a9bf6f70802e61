package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-pancake-orders/internal/config"
	"github.com/ariefcatur/go-pancake-orders/internal/logger"
	"github.com/ariefcatur/go-pancake-orders/internal/orders"
)

func TestOpenMemory(t *testing.T) {
	store, closeFn, err := Open(context.Background(), config.Config{StoreBackend: config.BackendMemory}, logger.Discard())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &orders.MemStore{}, store)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), config.Config{StoreBackend: "sqlite"}, logger.Discard())
	assert.Error(t, err)
}

func TestOpenPostgresBadDSN(t *testing.T) {
	_, _, err := Open(context.Background(), config.Config{StoreBackend: config.BackendPostgres, PostgresDSN: "postgres://localhost:notaport/pancakes"}, logger.Discard())
	assert.ErrorContains(t, err, "db connect")
}
