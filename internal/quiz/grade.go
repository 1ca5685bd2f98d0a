package quiz

import (
	"context"
	"fmt"
)

// GradeAttempt reconciles a user's submitted answers against the quiz's
// persisted questions. Grading is all-or-nothing: a cardinality mismatch
// or an answer referencing the wrong quiz/option aborts without grading
// anything. On success the quiz is marked completed once.
func (s *Service) GradeAttempt(ctx context.Context, quizID int64, answers []AnswerInput) ([]QuestionGrade, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	// A creating quiz has no questions, so an empty submission would
	// sail through the cardinality check and mark it completed.
	if q.Status == StatusCreating {
		return nil, fmt.Errorf("%w: quiz %d", ErrQuizNotReady, quizID)
	}
	questions, err := s.store.QuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if len(answers) != len(questions) {
		return nil, fmt.Errorf("%w: submitted %d, quiz %d has %d",
			ErrAnswerCountMismatch, len(answers), quizID, len(questions))
	}

	byID := make(map[int64]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	grades := make([]QuestionGrade, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: question %d, quiz %d", ErrQuestionNotInQuiz, a.QuestionID, quizID)
		}

		var correctID int64
		var haveCorrect, haveSelected bool
		for _, o := range q.Options {
			if o.IsCorrect {
				correctID = o.ID
				haveCorrect = true
			}
			if o.ID == a.SelectedOptionID {
				haveSelected = true
			}
		}
		if !haveCorrect {
			return nil, fmt.Errorf("%w: question %d", ErrNoCorrectOption, q.ID)
		}
		if !haveSelected {
			return nil, fmt.Errorf("%w: option %d, question %d", ErrOptionNotInQuestion, a.SelectedOptionID, q.ID)
		}

		grades = append(grades, QuestionGrade{
			QuestionID:       q.ID,
			SelectedOptionID: a.SelectedOptionID,
			CorrectOptionID:  correctID,
			IsCorrect:        a.SelectedOptionID == correctID,
		})
	}

	// Audit rows are written only after the whole submission validated.
	for _, g := range grades {
		if err := s.store.InsertAttempt(ctx, g.QuestionID, g.SelectedOptionID, g.IsCorrect); err != nil {
			return nil, fmt.Errorf("record attempt for question %d: %w", g.QuestionID, err)
		}
	}
	if err := s.store.UpdateStatus(ctx, quizID, StatusCompleted); err != nil {
		return nil, err
	}
	return grades, nil
}
