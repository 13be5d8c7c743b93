package model

// UserStats are the dashboard counters of a single user.
type UserStats struct {
	QuestionCount int `json:"question_count"`
	QuizAttempts  int `json:"quiz_attempts"`
}

// AdminStats are the aggregate counters shown to administrators.
type AdminStats struct {
	QuestionCount int `json:"question_count"`
	UserCount     int `json:"user_count"`
	QuizAttempts  int `json:"quiz_attempts"`
}
