package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/repository/memory"
)

func TestStatsCountAttempts(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	stats := NewStatsService(store)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := store.Create(ctx, &model.User{Email: email, PasswordHash: "x"}); err != nil {
			t.Fatalf("create %s: %v", email, err)
		}
	}
	if _, err := store.ReplaceAll(ctx, []model.Question{question("Q1", "A"), question("Q2", "B")}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	submit := func(userID int, at time.Time) {
		t.Helper()
		answers := []model.SubmittedAnswer{{QuestionID: 1, SelectedOption: "A"}, {QuestionID: 2, SelectedOption: "A"}}
		if _, _, err := store.Submit(ctx, userID, answers, at); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	submit(1, day)
	submit(1, day.Add(time.Hour))
	submit(2, day)

	user, err := stats.UserDashboard(ctx, 1)
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}
	if user.QuestionCount != 2 || user.QuizAttempts != 2 {
		t.Fatalf("unexpected user stats: %+v", user)
	}

	admin, err := stats.AdminStats(ctx)
	if err != nil {
		t.Fatalf("admin stats: %v", err)
	}
	if admin.QuestionCount != 2 || admin.UserCount != 2 || admin.QuizAttempts != 2 {
		t.Fatalf("unexpected admin stats: %+v", admin)
	}
}

// blockingStats holds AdminStats open until release is closed.
type blockingStats struct {
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingStats) UserStats(ctx context.Context, userID int) (*model.UserStats, error) {
	return &model.UserStats{}, nil
}

func (b *blockingStats) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	b.calls.Add(1)
	<-b.release
	return &model.AdminStats{QuestionCount: 3, UserCount: 2, QuizAttempts: 1}, nil
}

func TestAdminStatsCoalescesConcurrentCallers(t *testing.T) {
	repo := &blockingStats{release: make(chan struct{})}
	stats := NewStatsService(repo)

	const callers = 8
	results := make(chan *model.AdminStats, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := stats.AdminStats(context.Background())
			if err != nil {
				t.Errorf("admin stats: %v", err)
				return
			}
			results <- s
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()
	close(results)

	if n := repo.calls.Load(); n != 1 {
		t.Fatalf("expected one query for concurrent callers, got %d", n)
	}

	var first *model.AdminStats
	for s := range results {
		if s.QuestionCount != 3 {
			t.Fatalf("unexpected stats: %+v", s)
		}
		if first != nil && first == s {
			t.Fatalf("callers share the same stats pointer")
		}
		first = s
	}
}

// cancellableStats blocks AdminStats until release is closed or its context
// ends.
type cancellableStats struct {
	calls   atomic.Int32
	release chan struct{}
}

func (c *cancellableStats) UserStats(ctx context.Context, userID int) (*model.UserStats, error) {
	return &model.UserStats{}, nil
}

func (c *cancellableStats) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	c.calls.Add(1)
	select {
	case <-c.release:
		return &model.AdminStats{UserCount: 4}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestAdminStatsSurvivesFirstCallerCancel(t *testing.T) {
	repo := &cancellableStats{release: make(chan struct{})}
	stats := NewStatsService(repo)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = stats.AdminStats(firstCtx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for repo.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("first query never started")
		}
		time.Sleep(time.Millisecond)
	}

	type result struct {
		stats *model.AdminStats
		err   error
	}
	second := make(chan result, 1)
	go func() {
		s, err := stats.AdminStats(context.Background())
		second <- result{s, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancelFirst()
	time.Sleep(20 * time.Millisecond)
	close(repo.release)

	got := <-second
	if got.err != nil {
		t.Fatalf("second caller failed after first cancelled: %v", got.err)
	}
	if got.stats.UserCount != 4 {
		t.Fatalf("unexpected stats: %+v", got.stats)
	}
	if n := repo.calls.Load(); n != 1 {
		t.Fatalf("expected one shared query, got %d", n)
	}
	<-firstDone
}
