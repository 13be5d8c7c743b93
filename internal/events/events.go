// Package events fans quiz activity out over Redis pub/sub so that live
// dashboards can refresh without polling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/config"
)

// Type names a kind of quiz activity.
type Type string

const (
	QuestionsReplaced Type = "questions.replaced"
	QuizSubmitted     Type = "quiz.submitted"
)

// Event is the JSON message published on config.EventsChannel.
type Event struct {
	Type Type      `json:"type"`
	At   time.Time `json:"at"`
}

// Bus publishes and subscribes to quiz events.
type Bus struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewBus creates a new Bus.
func NewBus(rdb *redis.Client, log zerolog.Logger) *Bus {
	return &Bus{
		rdb: rdb,
		log: log.With().Str("component", "events").Logger(),
	}
}

// Publish broadcasts an event of type t. Failures are logged, not returned.
func (b *Bus) Publish(ctx context.Context, t Type) {
	payload, err := json.Marshal(Event{Type: t, At: time.Now().UTC()})
	if err != nil {
		b.log.Error().Err(err).Str("type", string(t)).Msg("Marshal event failed")
		return
	}
	if err := b.rdb.Publish(ctx, config.EventsChannel, payload).Err(); err != nil {
		b.log.Warn().Err(err).Str("type", string(t)).Msg("Publish event failed")
	}
}

// Subscribe delivers events until ctx is done or the returned cancel func is
// called. The channel is closed afterwards.
func (b *Bus) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	sub := b.rdb.Subscribe(ctx, config.EventsChannel)
	// Events published after Subscribe returns must not be lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", config.EventsChannel, err)
	}

	out := make(chan Event, 8)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Warn().Err(err).Msg("Dropping malformed event")
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = sub.Close() }, nil
}
