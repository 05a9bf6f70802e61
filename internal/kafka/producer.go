package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer closed")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer buffers messages in an inbox and writes them from one goroutine,
// so request handlers never wait on the broker.
type Producer struct {
	w       messageWriter
	log     *slog.Logger
	inbox   chan kafka.Message
	closeCh chan struct{}

	// abort cuts the drain short once WaitClosed gives up
	abort     context.Context
	abortFunc context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic string, buf int, log *slog.Logger) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, buf, log)
}

func newProducer(w messageWriter, buf int, log *slog.Logger) *Producer {
	abort, abortFunc := context.WithCancel(context.Background())
	return &Producer{
		w:         w,
		log:       log,
		inbox:     make(chan kafka.Message, buf),
		closeCh:   make(chan struct{}),
		abort:     abort,
		abortFunc: abortFunc,
	}
}

// Start runs the write loop until Close is called and the inbox is drained.
func (p *Producer) Start() {
	go func() {
		defer close(p.closeCh)
		dropped := 0
		for m := range p.inbox {
			if p.abort.Err() != nil {
				dropped++
				continue
			}
			ctx, cancel := context.WithTimeout(p.abort, 10*time.Second)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				p.log.Error("kafka write failed", slog.String("key", string(m.Key)), slog.Any("error", err))
			}
			cancel()
		}
		if dropped > 0 {
			p.log.Warn("kafka drain aborted, messages dropped", slog.Int("dropped", dropped))
		}
		if err := p.w.Close(); err != nil {
			p.log.Error("kafka writer close", slog.Any("error", err))
		}
	}()
}

// Publish enqueues a message. It blocks only while the inbox is full.
func (p *Producer) Publish(ctx context.Context, key, value []byte, headers ...kafka.Header) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}
	m := kafka.Message{Key: key, Value: value, Time: time.Now(), Headers: headers}
	select {
	case p.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting messages; the loop flushes what is queued and exits.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

// WaitClosed waits for the loop to flush the inbox after Close. When ctx ends
// first, the in-flight write is cancelled, whatever is still queued is dropped,
// and ctx.Err() is returned once the loop has exited.
func (p *Producer) WaitClosed(ctx context.Context) error {
	select {
	case <-p.closeCh:
		return nil
	case <-ctx.Done():
		p.abortFunc()
		<-p.closeCh
		return ctx.Err()
	}
}
