package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/events"
	"github.com/stemsi/quizxmentor-backend/internal/model"
	"github.com/stemsi/quizxmentor-backend/internal/spreadsheet"
)

// Sentinel errors for spreadsheet uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// QuestionBank reads and replaces the stored question set.
type QuestionBank interface {
	List(ctx context.Context) ([]model.Question, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, questions []model.Question) (int, error)
}

// EventPublisher announces quiz activity to live dashboards.
type EventPublisher interface {
	Publish(ctx context.Context, t events.Type)
}

// QuestionService handles the question bank and the upload pipeline.
type QuestionService struct {
	bank           QuestionBank
	events         EventPublisher
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(bank QuestionBank, publisher EventPublisher, maxUploadBytes int64, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		bank:           bank,
		events:         publisher,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("component", "question_service").Logger(),
	}
}

// ListForQuiz returns the whole bank. The answer key is included only when
// withAnswers is set, which handlers reserve for administrators.
func (s *QuestionService) ListForQuiz(ctx context.Context, withAnswers bool) ([]model.QuizQuestion, error) {
	questions, err := s.bank.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.QuizQuestion, len(questions))
	for i, q := range questions {
		out[i] = model.QuizQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
		}
		if withAnswers {
			out[i].CorrectAns = q.CorrectAns
		}
	}
	return out, nil
}

// Count returns the size of the question bank.
func (s *QuestionService) Count(ctx context.Context) (int, error) {
	return s.bank.Count(ctx)
}

// ValidateUpload checks the uploaded file's extension and size before parsing.
func (s *QuestionService) ValidateUpload(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" {
		return fmt.Errorf("%w: %q (allowed: .xlsx)", ErrUnsupportedFileType, ext)
	}
	if header.Size > s.maxUploadBytes {
		return fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.maxUploadBytes)
	}
	return nil
}

// ReplaceFromSpreadsheet parses a workbook and atomically swaps the whole
// bank for its rows, clearing the answer log too. A parse failure is
// returned as *spreadsheet.ParseError and leaves the bank untouched.
func (s *QuestionService) ReplaceFromSpreadsheet(ctx context.Context, r io.Reader) (int, error) {
	questions, err := spreadsheet.ParseQuestions(r)
	if err != nil {
		return 0, err
	}

	n, err := s.bank.ReplaceAll(ctx, questions)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("count", n).Msg("Question bank replaced")
	s.events.Publish(ctx, events.QuestionsReplaced)
	return n, nil
}
