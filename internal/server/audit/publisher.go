// Package audit ships committed ledger transactions to an external sink.
// Publishing happens after the write commits; a failed publish never undoes
// the write.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

// Sink names accepted by the audit_sink setting.
const (
	SinkNone  = "none"
	SinkKafka = "kafka"
	SinkS3    = "s3"
)

type Publisher interface {
	Publish(ctx context.Context, tx *models.Transaction) error
	Close() error
}

// Nop drops everything.
type Nop struct{}

func (Nop) Publish(context.Context, *models.Transaction) error { return nil }
func (Nop) Close() error                                        { return nil }

func encode(tx *models.Transaction) ([]byte, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("encode transaction %s: %w", tx.ID, err)
	}
	return data, nil
}

// Options configures New.
type Options struct {
	Sink         string
	KafkaBrokers []string
	KafkaTopic   string
	S3           S3Options
}

// New builds the publisher selected by opts.Sink.
func New(ctx context.Context, opts Options) (Publisher, error) {
	switch opts.Sink {
	case "", SinkNone:
		return Nop{}, nil
	case SinkKafka:
		if len(opts.KafkaBrokers) == 0 || opts.KafkaTopic == "" {
			return nil, fmt.Errorf("kafka sink needs brokers and topic")
		}
		return NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic), nil
	case SinkS3:
		return NewS3Publisher(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown audit sink %q", opts.Sink)
	}
}
