package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/quizxmentor-backend/internal/model"
)

// StatsRepository runs the read-only dashboard aggregates.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// UserStats counts the bank and the distinct submission instants of one user.
func (r *StatsRepository) UserStats(ctx context.Context, userID int) (*model.UserStats, error) {
	s := &model.UserStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(DISTINCT answered_at) FROM answers WHERE user_id = $1)`,
		userID,
	).Scan(&s.QuestionCount, &s.QuizAttempts)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return s, nil
}

// AdminStats counts questions, users and distinct (user, day) answer pairs.
func (r *StatsRepository) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	s := &model.AdminStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM (
				SELECT DISTINCT user_id, (answered_at AT TIME ZONE 'UTC')::date FROM answers
			) AS attempts)`,
	).Scan(&s.QuestionCount, &s.UserCount, &s.QuizAttempts)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return s, nil
}
