package http

import (
	"encoding/json"
	"net/http"

	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/user"
)

// GET /users/theme
func GetThemeHandler(users *user.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		theme, err := users.CurrentTheme(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
	}
}

// PUT /users/theme  {"description": "..."}
func SetThemeHandler(users *user.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		var req struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Description == "" {
			http.Error(w, "description is required", http.StatusBadRequest)
			return
		}
		if err := users.SetTheme(r.Context(), userID, req.Description); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"theme": req.Description})
	}
}
