package quiz

import "errors"

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrThemeNotFound   = errors.New("user theme not found")

	// ErrInvalidQuestionCount rejects CreateQuiz calls with a
	// non-positive question count.
	ErrInvalidQuestionCount = errors.New("total questions must be positive")

	// ErrQuizNotReady rejects grading a quiz whose questions have not
	// been materialized yet.
	ErrQuizNotReady = errors.New("quiz is still generating")

	// ErrAnswerCountMismatch: submitted answers != persisted questions.
	// No partial grading happens.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")

	// ErrQuestionNotInQuiz: a submitted question id does not belong to
	// the quiz being graded.
	ErrQuestionNotInQuiz = errors.New("question does not belong to quiz")

	// ErrOptionNotInQuestion: a submitted option id is not one of the
	// question's options.
	ErrOptionNotInQuestion = errors.New("selected option does not belong to question")

	// ErrNoCorrectOption signals a data-integrity problem: by invariant
	// exactly one option per question is correct.
	ErrNoCorrectOption = errors.New("question has no correct option")
)
