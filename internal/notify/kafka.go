package notify

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/hashicorp/go-hclog"
)

type kafkaProducer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Events() chan kafka.Event
	Flush(timeoutMs int) int
	Close()
}

// KafkaDispatcher produces events to a topic, keyed by match id so one match's
// events stay ordered within a partition.
type KafkaDispatcher struct {
	producer kafkaProducer
	topic    string
	logger   hclog.Logger
}

func NewKafkaDispatcher(brokers, clientID, topic string, logger hclog.Logger) (*KafkaDispatcher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"client.id":         clientID,
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return newKafkaDispatcher(p, topic, logger), nil
}

func newKafkaDispatcher(p kafkaProducer, topic string, logger hclog.Logger) *KafkaDispatcher {
	d := &KafkaDispatcher{producer: p, topic: topic, logger: logger}
	go d.watchDeliveries()
	return d
}

// watchDeliveries drains the producer's event channel; delivery reports are
// the only place asynchronous produce failures surface.
func (d *KafkaDispatcher) watchDeliveries() {
	for ev := range d.producer.Events() {
		switch e := ev.(type) {
		case *kafka.Message:
			if e.TopicPartition.Error != nil {
				d.logger.Warn("kafka delivery failed", "topic", d.topic, "key", string(e.Key), "error", e.TopicPartition.Error)
			}
		case kafka.Error:
			d.logger.Warn("kafka producer error", "error", e)
		}
	}
}

func (d *KafkaDispatcher) Dispatch(_ context.Context, evt Event) error {
	value, err := evt.Payload()
	if err != nil {
		return err
	}
	topic := d.topic
	return d.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(fmt.Sprintf("match-%d", evt.MatchID)),
		Value:          value,
		Headers:        []kafka.Header{{Key: "event_type", Value: []byte(evt.Type)}},
	}, nil)
}

// Close flushes outstanding messages for up to five seconds.
func (d *KafkaDispatcher) Close() error {
	if left := d.producer.Flush(5000); left > 0 {
		d.logger.Warn("kafka messages not flushed on close", "count", left)
	}
	d.producer.Close()
	return nil
}
