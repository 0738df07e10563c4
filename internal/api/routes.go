package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.userMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Get("/users", s.handleListUsers)
	r.Post("/users", s.handleCreateUser)
	r.Get("/users/{id}", s.handleGetUser)
	r.Delete("/users/{id}", s.handleDeleteUser)
	r.Post("/users/{id}/select", s.handleSelectUser)

	r.Get("/survey/questions", s.handleSurveyQuestions)
	r.Post("/survey/complete", s.handleCompleteSurvey)

	r.Get("/groups", s.handleListGroups)
	r.Post("/groups", s.handleCreateGroup)
	r.Get("/groups/{id}", s.handleGetGroup)
	r.Post("/groups/{id}/join", s.handleJoinGroup)
	r.Get("/groups/{id}/trips", s.handleListGroupTrips)
	r.Post("/groups/{id}/trips", s.handlePlanTrip)

	r.Get("/trips/{id}", s.handleGetTrip)
	r.Post("/trips/{id}/start", s.handleStartTrip)
	r.Post("/trips/{id}/quests/{seq}/roll", s.handleRollQuest)
	r.Post("/trips/{id}/quests/{seq}/complete", s.handleCompleteQuest)
	r.Post("/trips/{id}/quests/{seq}/skip", s.handleSkipQuest)

	return r
}
