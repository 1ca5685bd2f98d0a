package quiz

// Quiz lifecycle. A quiz is born "creating" with zero questions; the
// processor flips it to "ready" once every generated question is
// persisted; grading an attempt marks it "completed".
const (
	StatusCreating  = "creating"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

type Quiz struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	SubjectID      int64  `json:"subject_id"`
	TotalQuestions int    `json:"total_questions"`
	Status         string `json:"status"`
	CreatedAt      int64  `json:"created_at"`
}

type Question struct {
	ID          int64    `json:"id"`
	QuizID      int64    `json:"quiz_id"`
	Description string   `json:"description"`
	Options     []Option `json:"options"`

	// Latest recorded attempt for this question, if any.
	LastAttempt *AttemptRecord `json:"last_attempt,omitempty"`
}

type Option struct {
	ID          int64  `json:"id"`
	QuestionID  int64  `json:"question_id"`
	Description string `json:"description"`
	// 0-based position among the question's 4 options; doubles as the
	// model's answer index.
	ReferenceNumber int  `json:"reference_number"`
	IsCorrect       bool `json:"is_correct"`
}

// GeneratedQuestion is the wire shape the completion provider must emit:
// a JSON array of these is the sole bridge between raw model text and
// persisted rows.
type GeneratedQuestion struct {
	Description  string   `json:"description"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// AnswerInput is one submitted (question, selected option) pair.
type AnswerInput struct {
	QuestionID       int64 `json:"question_id"`
	SelectedOptionID int64 `json:"selected_option_id"`
}

// QuestionGrade is the per-question grading outcome. The correct option
// id is always included so callers can show "you picked X, correct was Y".
type QuestionGrade struct {
	QuestionID       int64 `json:"question_id"`
	SelectedOptionID int64 `json:"selected_option_id"`
	CorrectOptionID  int64 `json:"correct_option_id"`
	IsCorrect        bool  `json:"is_correct"`
}

// AttemptRecord is an append-only audit row for a graded answer.
type AttemptRecord struct {
	QuestionID       int64 `json:"question_id"`
	SelectedOptionID int64 `json:"selected_option_id"`
	IsCorrect        bool  `json:"is_correct"`
}
