package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/quiz"
)

// QuizHandler serves the quiz lifecycle: creation, listing, questions,
// and attempt grading.
type QuizHandler struct {
	log zerolog.Logger
	svc *quiz.Service
}

func NewQuizHandler(log zerolog.Logger, svc *quiz.Service) *QuizHandler {
	return &QuizHandler{log: log, svc: svc}
}

// POST /quizzes  {"subject_id": 42, "total_questions": 5}
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	var req struct {
		SubjectID      int64 `json:"subject_id"`
		TotalQuestions int   `json:"total_questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	q, err := h.svc.CreateQuiz(r.Context(), userID, req.SubjectID, req.TotalQuestions)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("create quiz failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// GET /quizzes
func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}
	qs, err := h.svc.QuizzesByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": qs})
}

// GET /quizzes/{quizID}
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quizID")
	if err != nil {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}
	q, err := h.svc.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type optionResponse struct {
	ID              int64  `json:"id"`
	Description     string `json:"description"`
	ReferenceNumber int    `json:"reference_number"`
}

type questionResponse struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Options     []optionResponse    `json:"options"`
	LastAttempt *quiz.AttemptRecord `json:"last_attempt,omitempty"`
}

// GET /quizzes/{quizID}/questions
// Correct flags are stripped; they only surface through grading.
func (h *QuizHandler) Questions(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quizID")
	if err != nil {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}
	questions, err := h.svc.QuestionsByQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		qr := questionResponse{ID: q.ID, Description: q.Description, LastAttempt: q.LastAttempt}
		for _, o := range q.Options {
			qr.Options = append(qr.Options, optionResponse{
				ID:              o.ID,
				Description:     o.Description,
				ReferenceNumber: o.ReferenceNumber,
			})
		}
		out = append(out, qr)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": out})
}

// POST /quizzes/{quizID}/attempts
// {"answers": [{"question_id": 1, "selected_option_id": 3}, ...]}
func (h *QuizHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quizID")
	if err != nil {
		http.Error(w, "invalid quiz id", http.StatusBadRequest)
		return
	}
	var req struct {
		Answers []quiz.AnswerInput `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.Answers) == 0 {
		http.Error(w, "answers are required", http.StatusBadRequest)
		return
	}
	grades, err := h.svc.GradeAttempt(r.Context(), quizID, req.Answers)
	if err != nil {
		h.log.Error().Err(err).Int64("quiz_id", quizID).Msg("grade attempt failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": grades})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
