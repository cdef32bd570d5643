package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Synapse-Social-Media/web-sub000/internal/config"
)

const (
	TopicSearchEvents = "search.events"
)

const (
	SearchEventTypePerformed = "search.performed"
)

// SearchEventPayload is the analytics event emitted after every search call.
// The result count reflects post-filtering reality, so under-fill after
// privacy filtering is observable downstream.
type SearchEventPayload struct {
	EventType   string    `json:"event_type"`
	Query       string    `json:"query"`
	SearchType  string    `json:"search_type"`
	ResultCount int       `json:"result_count"`
	RequesterID uuid.UUID `json:"requester_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type KafkaProducerClient struct {
	SearchEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'search.events'
	searchWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicSearchEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		SearchEventsWriter: searchWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishSearchEvent(ctx context.Context, payload SearchEventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal search event: %w", err)
	}

	return c.SearchEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Query),
		Value: data,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.SearchEventsWriter != nil {
		c.SearchEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
