package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/flood-route-advisor/internal/config"
	"github.com/couchcryptid/flood-route-advisor/internal/hazards"
)

// Reader consumes hazard snapshot messages from the feed topic.
// It implements hazards.Extractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured hazard topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaHazardTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Reader{reader: r, logger: logger}
}

// Extract blocks until the next message arrives or the context is cancelled.
func (r *Reader) Extract(ctx context.Context) (hazards.RawMessage, error) {
	msg, err := r.reader.ReadMessage(ctx)
	if err != nil {
		return hazards.RawMessage{}, err
	}
	return mapMessageToRawMessage(msg), nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawMessage converts a kafka-go message into the feed's
// transport-neutral form.
func mapMessageToRawMessage(msg kafkago.Message) hazards.RawMessage {
	return hazards.RawMessage{
		Key:       msg.Key,
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
