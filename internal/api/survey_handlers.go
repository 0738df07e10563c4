package api

import (
	"net/http"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/services"
)

func (s *Server) handleSurveyQuestions(w http.ResponseWriter, r *http.Request) {
	primary, secondary := s.SurveyService.Questions(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"primary":   primary,
		"secondary": secondary,
	})
}

func (s *Server) handleCompleteSurvey(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		handleError(w, r, errors.NewBadRequestError("no user selected"))
		return
	}

	var sub services.SurveySubmission
	if err := decodeJSON(r, &sub); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.SurveyService.CompleteSurvey(r.Context(), user.ID, sub)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
