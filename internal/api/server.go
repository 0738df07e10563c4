package api

import (
	"database/sql"

	"github.com/ngabriel/sproutquest/internal/services"
)

type Server struct {
	DB            *sql.DB
	UserService   services.UserService
	SurveyService services.SurveyService
	GroupService  services.GroupService
	TripService   services.TripService
}
