package events

import (
	"context"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"
)

// maxDeliveries is the number of attempts before a request is dead-lettered.
const maxDeliveries = 3

// receiveBackoff is the pause after a failed receive.
const receiveBackoff = time.Second

type receiver interface {
	Receive(ctx context.Context) (pulsar.Message, error)
	Ack(msg pulsar.Message) error
	Nack(msg pulsar.Message)
	Close()
}

// Handler processes one message payload. A returned error nacks the message.
type Handler func(ctx context.Context, payload []byte) error

type EventConsumer struct {
	client   pulsar.Client
	consumer receiver
	log      *zerolog.Logger
	backoff  time.Duration
}

// NewEventConsumer initializes the Pulsar client and a shared subscription
// that dead-letters a message after three failed deliveries.
func NewEventConsumer(pulsarURL, topic, subscription string, log *zerolog.Logger) (*EventConsumer, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	consumer, err := client.Subscribe(pulsar.ConsumerOptions{
		Topic:            topic,
		SubscriptionName: subscription,
		Type:             pulsar.Shared,
		DLQ: &pulsar.DLQPolicy{
			MaxDeliveries:   maxDeliveries,
			DeadLetterTopic: topic + "-dlq",
		},
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar consumer: %w", err)
	}

	return &EventConsumer{client: client, consumer: consumer, log: log, backoff: receiveBackoff}, nil
}

// Run receives messages until ctx is cancelled, acking those the handler
// accepts and nacking the rest.
func (c *EventConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.consumer.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error().Err(err).Msg("Error receiving message")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		if err := handle(ctx, msg.Payload()); err != nil {
			c.log.Error().Err(err).Msg("Failed to process message")
			c.consumer.Nack(msg)
			continue
		}

		if err := c.consumer.Ack(msg); err != nil {
			c.log.Error().Err(err).Msg("Failed to acknowledge message")
		}
	}
}

// Close cleans up the Pulsar consumer and client.
func (c *EventConsumer) Close() {
	c.consumer.Close()
	if c.client != nil {
		c.client.Close()
	}
}
