package model

import "time"

// Answer is one graded entry of the append-only answer log.
type Answer struct {
	ID             int64     `json:"id"`
	UserID         int       `json:"user_id"`
	QuestionID     int       `json:"question_id"`
	SelectedOption string    `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at"`
}

// SubmittedAnswer is a single (question, option) pair of a quiz submission.
type SubmittedAnswer struct {
	QuestionID     int
	SelectedOption string
}

// GradedAnswer pairs a submitted option with the question it was graded against.
type GradedAnswer struct {
	Question       Question
	SelectedOption string
	IsCorrect      bool
}

// SubmitQuizRequest is the payload of POST /api/quiz/submit.
// Keys are question ids, values the chosen option letter.
type SubmitQuizRequest struct {
	Answers map[string]string `json:"answers" binding:"required,dive,keys,numeric,endkeys,min=1,max=10"`
}

// QuestionResult is the per-question detail of a score summary.
type QuestionResult struct {
	QuestionID int               `json:"question_id"`
	Question   string            `json:"question"`
	Options    map[string]string `json:"options"`
	Selected   string            `json:"selected"`
	Correct    string            `json:"correct"`
	IsCorrect  bool              `json:"is_correct"`
}

// ScoreSummary is returned after a quiz is graded. Total is the size of the
// whole question bank, not the number of submitted answers.
type ScoreSummary struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}
