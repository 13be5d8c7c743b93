package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/events"
	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/repository"
)

// Quiz scoring errors.
var (
	ErrQuestionNotFound = repository.ErrQuestionNotFound
	ErrInvalidAnswer    = errors.New("invalid answer")
)

// AnswerLog grades and records a submission atomically.
type AnswerLog interface {
	Submit(ctx context.Context, userID int, answers []model.SubmittedAnswer, answeredAt time.Time) ([]model.GradedAnswer, int, error)
}

// QuizService grades quiz submissions.
type QuizService struct {
	answers AnswerLog
	events  EventPublisher
	log     zerolog.Logger
	now     func() time.Time
}

// NewQuizService creates a new QuizService.
func NewQuizService(answers AnswerLog, publisher EventPublisher, log zerolog.Logger) *QuizService {
	return &QuizService{
		answers: answers,
		events:  publisher,
		log:     log.With().Str("component", "quiz_service").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit grades answers (question id -> selected option) for userID, logs
// every graded pair, and summarizes the score against the whole bank.
func (s *QuizService) Submit(ctx context.Context, userID int, answers map[string]string) (*model.ScoreSummary, error) {
	submitted, err := parseAnswers(answers)
	if err != nil {
		return nil, err
	}

	graded, total, err := s.answers.Submit(ctx, userID, submitted, s.now())
	if err != nil {
		return nil, err
	}

	summary := Summarize(graded, total)

	s.log.Info().
		Int("user_id", userID).
		Int("answered", len(graded)).
		Int("score", summary.Score).
		Int("total", summary.Total).
		Msg("Quiz graded")
	s.events.Publish(ctx, events.QuizSubmitted)

	return summary, nil
}

// Summarize builds the score summary of graded answers against a bank of
// total questions. The percentage is rounded to two decimals and is zero for
// an empty bank.
func Summarize(graded []model.GradedAnswer, total int) *model.ScoreSummary {
	summary := &model.ScoreSummary{
		Total:   total,
		Results: make([]model.QuestionResult, 0, len(graded)),
	}

	for _, g := range graded {
		if g.IsCorrect {
			summary.Score++
		}
		summary.Results = append(summary.Results, model.QuestionResult{
			QuestionID: g.Question.ID,
			Question:   g.Question.QuestionText,
			Options:    g.Question.Options(),
			Selected:   g.SelectedOption,
			Correct:    g.Question.CorrectAns,
			IsCorrect:  g.IsCorrect,
		})
	}

	if total > 0 {
		pct := float64(summary.Score) / float64(total) * 100
		summary.Percentage = math.Round(pct*100) / 100
	}
	return summary
}

// parseAnswers converts the wire map into submissions ordered by question id.
// Ids are 32-bit like the questions.id column; a larger positive id cannot
// exist and is reported as not found. Two keys naming the same id ("1" and
// "01") are rejected.
func parseAnswers(answers map[string]string) ([]model.SubmittedAnswer, error) {
	out := make([]model.SubmittedAnswer, 0, len(answers))
	for key, option := range answers {
		id, err := strconv.ParseInt(key, 10, 32)
		if errors.Is(err, strconv.ErrRange) && id > 0 {
			return nil, fmt.Errorf("%w: id %s", ErrQuestionNotFound, key)
		}
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: question id %q", ErrInvalidAnswer, key)
		}
		if option == "" {
			return nil, fmt.Errorf("%w: empty option for question %d", ErrInvalidAnswer, id)
		}
		out = append(out, model.SubmittedAnswer{QuestionID: int(id), SelectedOption: option})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	for i := 1; i < len(out); i++ {
		if out[i].QuestionID == out[i-1].QuestionID {
			return nil, fmt.Errorf("%w: duplicate answer for question %d", ErrInvalidAnswer, out[i].QuestionID)
		}
	}
	return out, nil
}
