package service

import (
	"context"
	"time"

	"github.com/stemsi/quizxmentor-backend/internal/model"
	"golang.org/x/sync/singleflight"
)

// StatsReader runs the aggregate dashboard queries.
type StatsReader interface {
	UserStats(ctx context.Context, userID int) (*model.UserStats, error)
	AdminStats(ctx context.Context) (*model.AdminStats, error)
}

// adminStatsTimeout bounds a shared admin stats query, which no longer
// follows any single caller's cancellation.
const adminStatsTimeout = 10 * time.Second

// StatsService handles dashboard counters.
type StatsService struct {
	repo  StatsReader
	group singleflight.Group
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo StatsReader) *StatsService {
	return &StatsService{repo: repo}
}

// UserDashboard returns the bank size and the attempt count of userID.
func (s *StatsService) UserDashboard(ctx context.Context, userID int) (*model.UserStats, error) {
	return s.repo.UserStats(ctx, userID)
}

// AdminStats returns the global counters. Concurrent callers share one
// in-flight query; nothing is kept once it returns.
func (s *StatsService) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	v, err, _ := s.group.Do("admin_stats", func() (interface{}, error) {
		// Followers share this call, so the first caller going away must not
		// cancel it.
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), adminStatsTimeout)
		defer cancel()
		return s.repo.AdminStats(qctx)
	})
	if err != nil {
		return nil, err
	}
	stats := *v.(*model.AdminStats)
	return &stats, nil
}
