package quiz

import (
	"context"
	"time"
)

// Store is the persistence surface of the generation/grading pipeline.
type Store interface {
	InsertQuiz(ctx context.Context, userID, subjectID int64, totalQuestions int) (Quiz, error)
	GetQuiz(ctx context.Context, id int64) (Quiz, error)
	ListQuizzesByUser(ctx context.Context, userID int64) ([]Quiz, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	DeleteQuiz(ctx context.Context, id int64) error

	InsertQuestion(ctx context.Context, quizID int64, description string) (int64, error)
	InsertOption(ctx context.Context, questionID int64, description string, referenceNumber int, isCorrect bool) (int64, error)
	// QuestionsByQuiz returns the quiz's questions with their options and
	// latest attempt, ordered by id.
	QuestionsByQuiz(ctx context.Context, quizID int64) ([]Question, error)

	InsertAttempt(ctx context.Context, questionID, selectedOptionID int64, isCorrect bool) error

	// DeleteStaleCreating removes quizzes still in "creating" older than
	// cutoff and reports their ids. Used by the orphan reaper.
	DeleteStaleCreating(ctx context.Context, cutoff time.Time) ([]int64, error)
}
