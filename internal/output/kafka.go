package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/foodvenues/internal/models"
)

// kafkaBatch bounds how many messages go into one SendMessages call.
const kafkaBatch = 500

// KafkaOutput publishes one JSON message per venue, keyed by row index and
// tagged with the run id.
type KafkaOutput struct {
	producer sarama.SyncProducer
	topic    string
	runID    string
}

func NewKafkaOutput(cfg models.KafkaConfig, runID string) (*KafkaOutput, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_1_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required by SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}
	return NewKafkaOutputWithProducer(producer, cfg.Topic, runID), nil
}

func NewKafkaOutputWithProducer(producer sarama.SyncProducer, topic, runID string) *KafkaOutput {
	return &KafkaOutput{producer: producer, topic: topic, runID: runID}
}

func (k *KafkaOutput) WriteVenues(ctx context.Context, venues []models.EnrichedVenue) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer is closed")
	}

	batch := make([]*sarama.ProducerMessage, 0, kafkaBatch)
	for i := range venues {
		msg, err := k.message(i, &venues[i])
		if err != nil {
			return err
		}
		batch = append(batch, msg)
		if len(batch) == kafkaBatch || i == len(venues)-1 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := k.producer.SendMessages(batch); err != nil {
				return fmt.Errorf("failed to send venues to topic %s: %w", k.topic, err)
			}
			batch = batch[:0]
		}
	}
	return nil
}

func (k *KafkaOutput) message(i int, v *models.EnrichedVenue) (*sarama.ProducerMessage, error) {
	value, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode venue %d: %w", i, err)
	}
	return &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(strconv.Itoa(i)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("run_id"), Value: []byte(k.runID)},
		},
	}, nil
}

func (k *KafkaOutput) Close() error {
	if k.producer == nil {
		return nil
	}
	err := k.producer.Close()
	k.producer = nil
	return err
}
