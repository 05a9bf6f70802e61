package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkax "github.com/ariefcatur/go-pancake-orders/internal/kafka"
	"github.com/ariefcatur/go-pancake-orders/internal/logger"
	"github.com/ariefcatur/go-pancake-orders/internal/orders"
	"github.com/ariefcatur/go-pancake-orders/internal/redisx"
)

func newService(t *testing.T, withRedis bool) (*Service, *[]Notification) {
	t.Helper()
	var got []Notification
	s := &Service{
		Catalog:        orders.SeedFlavors(),
		WhatsAppNumber: "254794056800",
		ServiceName:    "notify",
		Log:            logger.Discard(),
		Deliver: func(_ context.Context, n Notification) error {
			got = append(got, n)
			return nil
		},
	}
	if withRedis {
		mr := miniredis.RunT(t)
		rdb := redisx.New(mr.Addr())
		t.Cleanup(func() { _ = rdb.Close() })
		s.Redis = rdb
	}
	return s, &got
}

func orderCreatedMessage(t *testing.T, o orders.Order) kafkago.Message {
	t.Helper()
	ev, err := orders.NewOrderCreated(o, "pancake-api", "req-9")
	require.NoError(t, err)
	return kafkago.Message{Key: orders.PartitionKey(o.ID), Value: kafkax.MustMarshal(ev)}
}

func sample() orders.Order {
	return orders.Order{ID: 4, Hostel: "Dawn Residence", Room: "3A", Quantity: 3,
		Flavors: []string{"pineapple"}, Total: 2400, Status: orders.StatusPending}
}

func TestHandleOrderCreated(t *testing.T) {
	s, got := newService(t, false)
	require.NoError(t, s.HandleOrderCreated(context.Background(), orderCreatedMessage(t, sample())))

	require.Len(t, *got, 1)
	n := (*got)[0]
	assert.Equal(t, int64(4), n.OrderID)
	assert.Contains(t, n.Message, "🍍 Pineapple")
	assert.Contains(t, n.Message, "$24.00")
	assert.True(t, strings.HasPrefix(n.Link, "https://wa.me/254794056800?text="))
}

func TestHandleOrderCreated_Dedup(t *testing.T) {
	s, got := newService(t, true)
	m := orderCreatedMessage(t, sample())

	require.NoError(t, s.HandleOrderCreated(context.Background(), m))
	require.NoError(t, s.HandleOrderCreated(context.Background(), m))
	assert.Len(t, *got, 1)
}

func TestHandleOrderCreated_IgnoresOtherEvents(t *testing.T) {
	s, got := newService(t, false)
	ev := orders.Envelope{EventID: "x", EventType: "SomethingElse", Payload: []byte(`{}`)}
	require.NoError(t, s.HandleOrderCreated(context.Background(), kafkago.Message{Value: kafkax.MustMarshal(ev)}))
	require.NoError(t, s.HandleOrderCreated(context.Background(), kafkago.Message{Value: []byte("garbage")}))
	assert.Empty(t, *got)
}

func TestHandleOrderCreated_DeliverErrorBubbles(t *testing.T) {
	s, _ := newService(t, false)
	s.Deliver = func(context.Context, Notification) error { return errors.New("sink down") }
	err := s.HandleOrderCreated(context.Background(), orderCreatedMessage(t, sample()))
	assert.EqualError(t, err, "sink down")
}

func TestHandleOrderCreated_RetryAfterDeliverFailure(t *testing.T) {
	s, got := newService(t, true)
	ok := s.Deliver
	s.Deliver = func(context.Context, Notification) error { return errors.New("sink down") }
	m := orderCreatedMessage(t, sample())

	require.Error(t, s.HandleOrderCreated(context.Background(), m))
	s.Deliver = ok
	require.NoError(t, s.HandleOrderCreated(context.Background(), m))
	assert.Len(t, *got, 1)
}
