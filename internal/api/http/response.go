package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/subject"
	"github.com/quizforge/quizforge/internal/user"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound),
		errors.Is(err, quiz.ErrSubjectNotFound),
		errors.Is(err, quiz.ErrThemeNotFound),
		errors.Is(err, subject.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, user.ErrThemeNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrInvalidQuestionCount),
		errors.Is(err, quiz.ErrQuizNotReady),
		errors.Is(err, quiz.ErrAnswerCountMismatch),
		errors.Is(err, quiz.ErrQuestionNotInQuiz),
		errors.Is(err, quiz.ErrOptionNotInQuestion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, quiz.ErrNoCorrectOption):
		// data-integrity violation, not a caller mistake
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
