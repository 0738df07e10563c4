package api

import (
	"net/http"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/models"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	filter := models.GroupFilter{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	// ?mine=1 narrows to the caller's groups
	if r.URL.Query().Get("mine") != "" {
		if user := userFromContext(r.Context()); user != nil {
			filter.MemberID = user.ID
		}
	}

	groups, err := s.GroupService.ListGroups(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		handleError(w, r, errors.NewBadRequestError("no user selected"))
		return
	}

	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.GroupService.CreateGroup(r.Context(), req.Name, req.Description, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, detail)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	detail, err := s.GroupService.GetGroup(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
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

	detail, err := s.GroupService.JoinGroup(r.Context(), id, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}
