package events

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/config"
)

func newBus(t *testing.T) (*Bus, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBus(client, zerolog.Nop()), mr
}

func TestPublishReachesSubscriber(t *testing.T) {
	bus, _ := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, stop, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer stop()

	bus.Publish(ctx, QuizSubmitted)

	select {
	case ev := <-feed:
		if ev.Type != QuizSubmitted {
			t.Fatalf("expected %s, got %s", QuizSubmitted, ev.Type)
		}
		if ev.At.IsZero() {
			t.Fatalf("expected event timestamp")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestSubscriberSkipsMalformedPayloads(t *testing.T) {
	bus, mr := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, stop, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer stop()

	mr.Publish(config.EventsChannel, "not json")
	bus.Publish(ctx, QuestionsReplaced)

	select {
	case ev := <-feed:
		if ev.Type != QuestionsReplaced {
			t.Fatalf("expected %s, got %s", QuestionsReplaced, ev.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestStopClosesFeed(t *testing.T) {
	bus, _ := newBus(t)

	feed, stop, err := bus.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	stop()

	select {
	case _, ok := <-feed:
		if ok {
			t.Fatalf("expected closed feed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("feed not closed after stop")
	}
}

func TestPublishWithoutRedisDoesNotPanic(t *testing.T) {
	bus, mr := newBus(t)
	mr.Close()

	bus.Publish(context.Background(), QuizSubmitted)
}
