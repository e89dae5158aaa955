package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"
)

// Notifier publishes provisioning outcomes.
type Notifier interface {
	Notify(ctx context.Context, event models.ProvisioningEvent) error
	Close()
}

type sender interface {
	Send(ctx context.Context, msg *pulsar.ProducerMessage) (pulsar.MessageID, error)
	Close()
}

type EventPublisher struct {
	client   pulsar.Client
	producer sender
	log      *zerolog.Logger
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string, log *zerolog.Logger) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL:               pulsarURL,
		OperationTimeout:  30 * time.Second,
		ConnectionTimeout: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	log.Info().Str("topic", topic).Msg("Pulsar client and producer initialized successfully")
	return &EventPublisher{client: client, producer: producer, log: log}, nil
}

// Notify publishes an event keyed by its record id.
func (p *EventPublisher) Notify(ctx context.Context, event models.ProvisioningEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize event payload: %w", err)
	}

	_, err = p.producer.Send(ctx, &pulsar.ProducerMessage{
		Key:     event.RecordID.String(),
		Payload: message,
	})
	if err != nil {
		return fmt.Errorf("could not send event to Pulsar: %w", err)
	}

	p.log.Debug().Str("record_id", event.RecordID.String()).Str("status", event.Status).Msg("Event sent to Pulsar")
	return nil
}

// Close closes the Pulsar producer and client
func (p *EventPublisher) Close() {
	p.producer.Close()
	if p.client != nil {
		p.client.Close()
	}
	p.log.Info().Msg("Pulsar client and producer closed successfully")
}
