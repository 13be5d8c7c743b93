// Package memory holds in-process implementations of the PostgreSQL
// repositories with the same observable semantics, for tests and demos.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/repository"
)

// Store keeps users, the question bank and the answer log in memory.
type Store struct {
	mu sync.RWMutex

	users      []model.User
	nextUserID int

	questions      []model.Question
	nextQuestionID int

	answers      []model.Answer
	nextAnswerID int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{nextUserID: 1, nextQuestionID: 1, nextAnswerID: 1}
}

// ─── Users ───────────────────────────────────────────────────────────

func (s *Store) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = s.nextUserID
	u.CreatedAt = time.Now().UTC()
	s.nextUserID++
	s.users = append(s.users, *u)
	return nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			s.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrNotFound
}

// ─── Questions ───────────────────────────────────────────────────────

func (s *Store) List(ctx context.Context) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}

// ReplaceAll swaps the bank and clears the answer log. Ids keep counting up
// across replacements.
func (s *Store) ReplaceAll(ctx context.Context, questions []model.Question) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bank := make([]model.Question, len(questions))
	now := time.Now().UTC()
	for i, q := range questions {
		q.ID = s.nextQuestionID
		q.CreatedAt = now
		s.nextQuestionID++
		bank[i] = q
	}
	s.questions = bank
	s.answers = nil
	return len(bank), nil
}

// ─── Answers ─────────────────────────────────────────────────────────

// Submit grades every answer before logging any, so a missing question
// leaves the log untouched.
func (s *Store) Submit(ctx context.Context, userID int, answers []model.SubmittedAnswer, answeredAt time.Time) ([]model.GradedAnswer, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	graded := make([]model.GradedAnswer, 0, len(answers))
	for _, a := range answers {
		q, ok := s.question(a.QuestionID)
		if !ok {
			return nil, 0, fmt.Errorf("%w: id %d", repository.ErrQuestionNotFound, a.QuestionID)
		}
		graded = append(graded, model.GradedAnswer{
			Question:       q,
			SelectedOption: a.SelectedOption,
			IsCorrect:      q.IsCorrect(a.SelectedOption),
		})
	}

	for _, g := range graded {
		s.answers = append(s.answers, model.Answer{
			ID:             s.nextAnswerID,
			UserID:         userID,
			QuestionID:     g.Question.ID,
			SelectedOption: g.SelectedOption,
			IsCorrect:      g.IsCorrect,
			AnsweredAt:     answeredAt,
		})
		s.nextAnswerID++
	}
	return graded, len(s.questions), nil
}

// Answers returns a snapshot of the answer log.
func (s *Store) Answers() []model.Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *Store) question(id int) (model.Question, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}

// ─── Stats ───────────────────────────────────────────────────────────

func (s *Store) UserStats(ctx context.Context, userID int) (*model.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instants := make(map[time.Time]struct{})
	for _, a := range s.answers {
		if a.UserID == userID {
			instants[a.AnsweredAt.UTC()] = struct{}{}
		}
	}
	return &model.UserStats{QuestionCount: len(s.questions), QuizAttempts: len(instants)}, nil
}

func (s *Store) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type attempt struct {
		userID int
		day    string
	}
	attempts := make(map[attempt]struct{})
	for _, a := range s.answers {
		attempts[attempt{a.UserID, a.AnsweredAt.UTC().Format(time.DateOnly)}] = struct{}{}
	}
	return &model.AdminStats{
		QuestionCount: len(s.questions),
		UserCount:     len(s.users),
		QuizAttempts:  len(attempts),
	}, nil
}
