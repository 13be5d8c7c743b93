package model

import "time"

// Option letters accepted as a question's correct answer.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// Question is one multiple-choice entry of the question bank.
type Question struct {
	ID           int       `json:"id"`
	QuestionText string    `json:"question"`
	OptionA      string    `json:"option_a"`
	OptionB      string    `json:"option_b"`
	OptionC      string    `json:"option_c"`
	OptionD      string    `json:"option_d"`
	CorrectAns   string    `json:"correct_ans"`
	CreatedAt    time.Time `json:"-"`
}

// IsCorrect reports whether selected matches the stored answer letter exactly.
func (q *Question) IsCorrect(selected string) bool {
	return q.CorrectAns == selected
}

// Options returns the four answer texts keyed by letter.
func (q *Question) Options() map[string]string {
	return map[string]string{
		OptionA: q.OptionA,
		OptionB: q.OptionB,
		OptionC: q.OptionC,
		OptionD: q.OptionD,
	}
}

// IsOptionLetter reports whether s is one of A, B, C or D.
func IsOptionLetter(s string) bool {
	switch s {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// QuizQuestion is the question view handed to quiz takers. CorrectAns is
// only populated for administrators.
type QuizQuestion struct {
	ID           int    `json:"id"`
	QuestionText string `json:"question"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	CorrectAns   string `json:"correct_ans,omitempty"`
}
