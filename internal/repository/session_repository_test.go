package repository

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSessionRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionRepository(client), mr
}

func TestSessionRepositorySaveAndDelete(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "abc", 42, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("session:abc") {
		t.Fatalf("expected redis key session:abc")
	}

	live, err := repo.Exists(ctx, "abc", 42)
	if err != nil || !live {
		t.Fatalf("expected live session, got %v (err %v)", live, err)
	}
	if live, _ := repo.Exists(ctx, "abc", 43); live {
		t.Fatalf("session must not authenticate another user")
	}

	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if live, _ := repo.Exists(ctx, "abc", 42); live {
		t.Fatalf("expected session gone after delete")
	}
	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionRepositoryExpires(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "short", 1, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL("session:short"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)

	if live, err := repo.Exists(ctx, "short", 1); err != nil || live {
		t.Fatalf("expected expired session, got %v (err %v)", live, err)
	}
}

func TestSessionRepositoryRedisDown(t *testing.T) {
	repo, mr := newSessionRepo(t)
	mr.Close()

	if _, err := repo.Exists(context.Background(), "abc", 1); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
