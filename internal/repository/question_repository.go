package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/quizxmentor-backend/internal/model"
)

// QuestionRepository is the question bank.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// List returns every question in insertion order.
func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, option_a, option_b, option_c, option_d, correct_ans, created_at
		 FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAns, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Count returns the size of the question bank.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// ReplaceAll discards every answer and question and inserts questions in
// slice order, all inside one transaction. On any error nothing changes.
func (r *QuestionRepository) ReplaceAll(ctx context.Context, questions []model.Question) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// The answer log is cleared together with the bank.
	if _, err := tx.Exec(ctx, `DELETE FROM answers`); err != nil {
		return 0, fmt.Errorf("clear answers: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM questions`); err != nil {
		return 0, fmt.Errorf("clear questions: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"questions"},
		[]string{"question_text", "option_a", "option_b", "option_c", "option_d", "correct_ans"},
		pgx.CopyFromSlice(len(questions), func(i int) ([]any, error) {
			q := questions[i]
			return []any{q.QuestionText, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAns}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy questions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(n), nil
}
