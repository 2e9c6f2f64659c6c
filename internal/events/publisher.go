package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

// Event is one entry in a match's event stream.
type Event struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	MatchID   string                 `json:"matchId"`
	Data      map[string]interface{} `json:"data"`
}

const (
	EventMatchStart = "match_start"
	EventMove       = "move"
	EventMatchEnd   = "match_end"
)

// Publisher delivers match events somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaPublisher sends events to a topic, keyed by match ID so one match
// stays on one partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return NewKafkaPublisherWithProducer(producer, topic), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.MatchID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish %s for match %s: %w", event.Type, event.MatchID, err)
	}
	log.Debug().Str("component", "events").Str("type", event.Type).Str("match", event.MatchID).
		Int32("partition", partition).Int64("offset", offset).Msg("event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher writes events to the log. It stands in when no broker is
// configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	log.Info().Str("component", "events").Str("type", event.Type).Str("match", event.MatchID).
		Fields(event.Data).Msg("match event")
	return nil
}

func (LogPublisher) Close() error {
	return nil
}

func MatchStartEvent(matchID, player1, player2 string) Event {
	return Event{
		Type:    EventMatchStart,
		MatchID: matchID,
		Data: map[string]interface{}{
			"player1": player1,
			"player2": player2,
		},
	}
}

func MoveEvent(matchID string, number, player, row, column int, rating string) Event {
	return Event{
		Type:    EventMove,
		MatchID: matchID,
		Data: map[string]interface{}{
			"number": number,
			"player": player,
			"row":    row,
			"column": column,
			"rating": rating,
		},
	}
}

func MatchEndEvent(matchID, winner, reason string, moves int, duration time.Duration) Event {
	return Event{
		Type:    EventMatchEnd,
		MatchID: matchID,
		Data: map[string]interface{}{
			"winner":   winner,
			"reason":   reason,
			"moves":    moves,
			"duration": duration.Seconds(),
		},
	}
}
