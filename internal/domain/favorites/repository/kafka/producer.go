// Package kafka contains Kafka repository implementations
package kafka

import (
	"context"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/config"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/deps"
	"github.com/Conte777/MovieFlow/internal/domain/favorites/dto"
	faverrors "github.com/Conte777/MovieFlow/internal/domain/favorites/errors"
	"github.com/Conte777/MovieFlow/internal/infrastructure/metrics"
)

// Producer implements deps.FavoriteEventProducer
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewProducer creates a Kafka producer, or a no-op producer when no brokers are configured
func NewProducer(cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) (deps.FavoriteEventProducer, error) {
	if !cfg.Enabled() {
		logger.Info().Msg("Kafka brokers not configured, favorite events disabled")
		return NoopProducer{}, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.FavoritesTopic).Msg("Kafka producer initialized successfully")

	return NewProducerWithClient(producer, cfg.FavoritesTopic, m, logger), nil
}

// NewProducerWithClient wraps an existing sarama producer
func NewProducerWithClient(producer sarama.SyncProducer, topic string, m *metrics.Metrics, logger zerolog.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		metrics:  m,
		logger:   logger,
	}
}

// SendFavoriteChanged sends a favorite event keyed by user so one user's events stay ordered
func (p *Producer) SendFavoriteChanged(ctx context.Context, event *dto.FavoriteChangedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.UserID, 10)),
		Value: sarama.ByteEncoder(jsonData),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.metrics.RecordKafkaError()
		p.logger.Error().Err(err).Str("topic", p.topic).Msg("Failed to send Kafka message")
		return fmt.Errorf("%w: %v", faverrors.ErrKafkaProducer, err)
	}

	p.metrics.RecordKafkaMessage()
	p.logger.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("action", string(event.Action)).
		Msg("Kafka message sent successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}

// NoopProducer drops events when Kafka is disabled
type NoopProducer struct{}

func (NoopProducer) SendFavoriteChanged(ctx context.Context, event *dto.FavoriteChangedEvent) error {
	return nil
}

func (NoopProducer) Close() error {
	return nil
}
