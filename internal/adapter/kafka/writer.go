package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/flood-route-advisor/internal/config"
	"github.com/couchcryptid/flood-route-advisor/internal/hazards"
)

// Writer publishes hazard snapshot updates to the feed topic. The advisor
// itself only consumes; the writer backs the fixture generator and the
// integration tests.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured hazard topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaHazardTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishUpdate serializes and publishes one snapshot update.
func (w *Writer) PublishUpdate(ctx context.Context, update hazards.Update) error {
	msg, err := serializeToMessage(update)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Update into a Kafka message.
func serializeToMessage(update hazards.Update) (kafkago.Message, error) {
	data, err := json.Marshal(update)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize hazard update: %w", err)
	}
	return kafkago.Message{
		Key:   []byte("snapshot"),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(update.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
