package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	l      logrus.FieldLogger
	w      MessageWriter
	topics map[Topic]string
}

// NewKafkaWriter returns an async writer keyed by entity id. Topics are set
// per message so one writer serves every topic.
func NewKafkaWriter(l logrus.FieldLogger, brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				l.WithError(err).WithField("count", len(messages)).Error("Failed to deliver events to Kafka")
			}
		},
	}
}

func NewKafkaPublisher(l logrus.FieldLogger, w MessageWriter, topics map[Topic]string) *KafkaPublisher {
	return &KafkaPublisher{l: l, w: w, topics: topics}
}

func (p *KafkaPublisher) Publish(topic Topic, e StatusEvent) error {
	name, ok := p.topics[topic]
	if !ok || name == "" {
		return fmt.Errorf("no Kafka topic configured for %q", topic)
	}
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	err = p.w.WriteMessages(context.Background(), kafka.Message{
		Topic: name,
		Key:   []byte(e.EntityID.String()),
		Value: value,
		Time:  e.OccurredAt,
	})
	if err != nil {
		p.l.WithError(err).WithField("topic", name).Error("Unable to publish event")
	}
	return err
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
