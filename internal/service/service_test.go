package service

import (
	"context"
	"sync"
	"time"

	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/events"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}
}

// recordingPublisher collects published event types.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Type
}

func (p *recordingPublisher) Publish(ctx context.Context, t events.Type) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, t)
}

func (p *recordingPublisher) Published() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Type(nil), p.events...)
}

// memorySessions is a SessionStore without expiry.
type memorySessions struct {
	mu   sync.Mutex
	live map[string]int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{live: make(map[string]int)}
}

func (s *memorySessions) Save(ctx context.Context, sessionID string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[sessionID] = userID
	return nil
}

func (s *memorySessions) Exists(ctx context.Context, sessionID string, userID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.live[sessionID]
	return ok && id == userID, nil
}

func (s *memorySessions) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, sessionID)
	return nil
}
