package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	kafka "github.com/segmentio/kafka-go"
)

// Publisher emits order lifecycle events. A nil Publisher (no brokers
// configured) turns every publish into a no-op, so checkout never depends on
// the broker being up.
type Publisher struct {
	writer  *kafka.Writer
	service string
	inbox   chan kafka.Message
	done    chan struct{}
}

func NewPublisher(brokers []string, service string) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		service: service,
		inbox:   make(chan kafka.Message, 256),
		done:    make(chan struct{}),
	}
}

// Start drains the inbox until Close. Publishing is best-effort; a failed
// write is logged, never propagated into the request path.
func (p *Publisher) Start() {
	if p == nil {
		return
	}
	go func() {
		defer close(p.done)
		for msg := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := p.writer.WriteMessages(ctx, msg); err != nil {
				log.Println("[EVENTS] [ERROR] publish failed:", err)
			}
			cancel()
		}
		_ = p.writer.Close()
	}()
}

// Close flushes buffered messages and waits for the publish loop to exit.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	close(p.inbox)
	<-p.done
}

// Publish wraps payload in a versioned envelope keyed by order id, keeping
// per-order event ordering within a partition.
func (p *Publisher) Publish(topic, eventType string, orderID int64, payload any) {
	if p == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Println("[EVENTS] [ERROR] marshal payload:", err)
		return
	}
	envelope := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.service,
		CorrelationID: strconv.FormatInt(orderID, 10),
		Payload:       raw,
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		log.Println("[EVENTS] [ERROR] marshal envelope:", err)
		return
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(envelope.CorrelationID),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}

	select {
	case p.inbox <- msg:
	default:
		log.Println("[EVENTS] [WARN] inbox full, dropping", eventType)
	}
}
