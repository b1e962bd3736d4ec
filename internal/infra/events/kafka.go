package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-slots/internal/events"
)

// ErrQueueFull is returned by Publish when the outgoing buffer is saturated.
var ErrQueueFull = errors.New("event queue full")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes booking events to one topic, keyed by resource so a
// resource's events stay ordered within a partition. Messages are written
// by a background worker; Publish only enqueues.
type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
	queue  chan kafka.Message

	closeOnce sync.Once
	done      chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, logger, 256)
}

func newPublisher(w messageWriter, logger *zap.Logger, size int) *KafkaPublisher {
	p := &KafkaPublisher{
		writer: w,
		logger: logger,
		queue:  make(chan kafka.Message, size),
		done:   make(chan struct{}),
	}
	go p.worker()
	return p
}

func (p *KafkaPublisher) worker() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Error("event publish failed",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (p *KafkaPublisher) Publish(_ context.Context, ev events.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(ev.ResourceID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.ID)},
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close flushes queued events and closes the writer. Publish must not be
// called afterwards.
func (p *KafkaPublisher) Close() error {
	p.closeOnce.Do(func() {
		close(p.queue)
	})
	<-p.done
	return p.writer.Close()
}

// SplitBrokers parses a comma separated broker list.
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
