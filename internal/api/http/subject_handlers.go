package http

import (
	"net/http"

	"github.com/quizforge/quizforge/internal/subject"
)

// GET /subjects
func ListSubjectsHandler(store *subject.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := store.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
	}
}

// GET /languages
func ListLanguagesHandler(store *subject.SQLStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		languages, err := store.ListLanguages(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"languages": languages})
	}
}
