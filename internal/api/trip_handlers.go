package api

import (
	"net/http"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/services"
)

type planTripRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (s *Server) handlePlanTrip(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		handleError(w, r, errors.NewBadRequestError("no user selected"))
		return
	}

	groupID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req planTripRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	trip, err := s.TripService.PlanTrip(r.Context(), services.PlanTripRequest{
		GroupID: groupID,
		UserID:  user.ID,
		Lat:     req.Lat,
		Lon:     req.Lon,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, trip)
}

func (s *Server) handleListGroupTrips(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	trips, err := s.TripService.ListTrips(r.Context(), models.TripFilter{
		GroupID: groupID,
		Status:  r.URL.Query().Get("status"),
		Limit:   queryInt(r, "limit"),
		Offset:  queryInt(r, "offset"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"trips": trips})
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.TripService.GetTrip(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleStartTrip(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		handleError(w, r, errors.NewBadRequestError("no user selected"))
		return
	}

	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.TripService.StartTrip(r.Context(), id, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRollQuest(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		handleError(w, r, errors.NewBadRequestError("no user selected"))
		return
	}

	tripID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	seq, err := seqParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.TripService.RollQuest(r.Context(), tripID, seq, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	tripID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	seq, err := seqParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.TripService.CompleteQuest(r.Context(), tripID, seq)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSkipQuest(w http.ResponseWriter, r *http.Request) {
	tripID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	seq, err := seqParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.TripService.SkipQuest(r.Context(), tripID, seq)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}
