package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per transaction, keyed by ticket id so
// the history of a ticket stays in one partition.
type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, tx *models.Transaction) error {
	data, err := encode(tx)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(tx.TicketID),
		Value: data,
		Time:  tx.CreatedAt,
		Headers: []kafka.Header{
			{Key: "mode", Value: []byte(tx.Mode)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
