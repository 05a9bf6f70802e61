package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-pancake-orders/internal/kafka"
	"github.com/ariefcatur/go-pancake-orders/internal/orders"
	"github.com/ariefcatur/go-pancake-orders/internal/redisx"
	"github.com/ariefcatur/go-pancake-orders/internal/whatsapp"
)

// Notification is what the fulfilment operator needs to confirm one order.
type Notification struct {
	OrderID int64
	Message string
	Link    string
}

type Service struct {
	Redis          *redis.Client // nil = tanpa dedup
	Catalog        []orders.Flavor
	WhatsAppNumber string
	ServiceName    string
	Log            *slog.Logger
	// Deliver receives each new notification. Nil means log only.
	Deliver func(ctx context.Context, n Notification) error
}

// HandleOrderCreated: dipasang sebagai handler consumer.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// pesan rusak tidak akan pernah sukses; log lalu commit
		s.Log.Error("drop malformed envelope", slog.Int64("offset", m.Offset), slog.Any("error", err))
		return nil
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	// 2) dedup via Redis (pakai event_id)
	if s.Redis != nil && env.EventID != "" {
		first, err := redisx.MarkSeen(ctx, s.Redis, s.ServiceName, env.EventID)
		if err != nil {
			return fmt.Errorf("dedup %s: %w", env.EventID, err)
		}
		if !first {
			s.Log.Debug("duplicate event skipped", slog.String("event_id", env.EventID))
			return nil
		}
	}

	// 3) decode payload
	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		s.Log.Error("drop malformed payload", slog.String("event_id", env.EventID), slog.Any("error", err))
		return nil
	}

	n := s.Build(p.Order)
	s.Log.Info("order ready for whatsapp confirmation",
		slog.Int64("order_id", n.OrderID),
		slog.String("trace_id", env.TraceID),
		slog.String("link", n.Link),
	)
	if s.Deliver == nil {
		return nil
	}
	if err := s.Deliver(ctx, n); err != nil {
		// lepas dedup supaya redelivery tidak di-skip
		if s.Redis != nil && env.EventID != "" {
			_ = redisx.Forget(ctx, s.Redis, s.ServiceName, env.EventID)
		}
		return err
	}
	return nil
}

func (s *Service) Build(o orders.Order) Notification {
	msg := whatsapp.FormatMessage(o, s.Catalog)
	return Notification{
		OrderID: o.ID,
		Message: msg,
		Link:    whatsapp.Link(s.WhatsAppNumber, msg),
	}
}
