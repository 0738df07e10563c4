package models

import (
	"time"

	"github.com/ngabriel/sproutquest/internal/survey"
)

type User struct {
	ID              int64            `json:"id"`
	Username        string           `json:"username"`
	Email           string           `json:"email"`
	CreatedAt       time.Time        `json:"created_at"`
	SurveyCompleted bool             `json:"survey_completed"`
	Personality     *survey.Category `json:"personality"`
	PlantMatch      *survey.PlantID  `json:"plant_match"`
}

// Category returns the user's personality category, or the empty category
// when the survey has not been completed.
func (u *User) Category() survey.Category {
	if u == nil || u.Personality == nil {
		return ""
	}
	return *u.Personality
}

// Plant returns the user's plant match, falling back to the default plant id
// used by the rendering layer.
func (u *User) Plant() survey.PlantID {
	if u == nil || u.PlantMatch == nil {
		return survey.DefaultPlant
	}
	return *u.PlantMatch
}

// SurveyResponse is the persisted record of a completed survey.
type SurveyResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Primary     survey.Category `json:"primary"`
	Secondary   string          `json:"secondary"` // secondary question id
	PlantMatch  survey.PlantID  `json:"plant_match"`
	AnswersJSON string          `json:"-"` // raw answers as submitted, for audit
	CreatedAt   time.Time       `json:"created_at"`
}
