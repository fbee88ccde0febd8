package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher writes domain events to the broker.
type Publisher interface {
	WriteMessage(ctx context.Context, event string, message any) error
}

// Consumer reads domain events from the broker.
type Consumer interface {
	ReadMessage(ctx context.Context) (string, string, error)
}

// KafkaPublisher only holds a writer, so processes that publish never join
// the consumer group.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(host string, port string, topic string) (*KafkaPublisher, error) {
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(fmt.Sprintf("%s:%s", host, port)),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}, nil
}

// WriteMessage publishes message as JSON keyed by the event name.
func (this *KafkaPublisher) WriteMessage(ctx context.Context, event string, message any) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return this.writer.WriteMessages(
		ctx,
		kafka.Message{
			Key:   []byte(event),
			Value: data,
		},
	)
}

func (this *KafkaPublisher) Close() error {
	return this.writer.Close()
}

type KafkaConsumer struct {
	reader *kafka.Reader
}

var _ Consumer = (*KafkaConsumer)(nil)

// NewKafkaConsumer joins group right away, so only the worker builds one.
func NewKafkaConsumer(host string, port string, topic string, group string) (*KafkaConsumer, error) {
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	if group == "" {
		return nil, fmt.Errorf("kafka consumer group is required")
	}

	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  []string{fmt.Sprintf("%s:%s", host, port)},
			Topic:    topic,
			GroupID:  group,
			MinBytes: 1,
			MaxBytes: 10e6,
			MaxWait:  time.Second,
		}),
	}, nil
}

// ReadMessage blocks until the next message and returns its event name and
// JSON payload.
func (this *KafkaConsumer) ReadMessage(ctx context.Context) (string, string, error) {
	message, err := this.reader.ReadMessage(ctx)
	if err != nil {
		return "", "", err
	}

	return string(message.Key), string(message.Value), nil
}

func (this *KafkaConsumer) Close() error {
	return this.reader.Close()
}
