package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/Synapse-Social-Media/web-sub000/adapters/event"
	"github.com/Synapse-Social-Media/web-sub000/adapters/persistence"
	"github.com/Synapse-Social-Media/web-sub000/internal/config"
)

const (
	keyTotalSearches = "search:analytics:total"
	keyTopQueries    = "search:analytics:top_queries"
)

// The worker consumes search analytics events and keeps lightweight counters
// in Redis: a total and a sorted set of the most-issued queries.
func main() {
	fmt.Println("Starting Synapse Search Analytics Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Kafka Consumer
	searchConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicSearchEvents,
		GroupID:  "search-analytics-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer searchConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicSearchEvents)

	ctx := context.Background()
	for {
		msg, err := searchConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.SearchEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			continue
		}

		query := strings.ToLower(strings.TrimSpace(payload.Query))
		if query == "" {
			continue
		}

		pipe := redisClient.Pipeline()
		pipe.Incr(ctx, keyTotalSearches)
		pipe.ZIncrBy(ctx, keyTopQueries, 1, query)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("ERROR: Failed to update analytics counters for query %q: %v", query, err)
		}
	}
}
