package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/quizxmentor-backend/internal/model"
)

// ErrQuestionNotFound is returned when a submission references an id that is
// not in the question bank.
var ErrQuestionNotFound = errors.New("question not found")

// AnswerRepository is the answer log.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Submit grades answers against the bank and appends them to the log in one
// transaction. Every row shares answeredAt. It returns the graded answers in
// input order and the current bank size. A missing question aborts the whole
// submission with an error wrapping ErrQuestionNotFound.
func (r *AnswerRepository) Submit(ctx context.Context, userID int, answers []model.SubmittedAnswer, answeredAt time.Time) ([]model.GradedAnswer, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	graded := make([]model.GradedAnswer, 0, len(answers))
	for _, a := range answers {
		var q model.Question
		err := tx.QueryRow(ctx,
			`SELECT id, question_text, option_a, option_b, option_c, option_d, correct_ans
			 FROM questions WHERE id = $1`, a.QuestionID,
		).Scan(&q.ID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAns)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, 0, fmt.Errorf("%w: id %d", ErrQuestionNotFound, a.QuestionID)
			}
			return nil, 0, fmt.Errorf("get question %d: %w", a.QuestionID, err)
		}

		correct := q.IsCorrect(a.SelectedOption)
		if _, err := tx.Exec(ctx,
			`INSERT INTO answers (user_id, question_id, selected_option, is_correct, answered_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			userID, q.ID, a.SelectedOption, correct, answeredAt,
		); err != nil {
			return nil, 0, fmt.Errorf("insert answer: %w", err)
		}

		graded = append(graded, model.GradedAnswer{
			Question:       q,
			SelectedOption: a.SelectedOption,
			IsCorrect:      correct,
		})
	}

	var total int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}
	return graded, total, nil
}
