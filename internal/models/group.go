package models

import (
	"time"

	"github.com/ngabriel/sproutquest/internal/survey"
)

// MaxGroupProgress caps the shared garden meter: five completed adventures
// fills it.
const MaxGroupProgress = 5

// BackgroundCount is the number of garden backgrounds a group can be
// assigned (picked at random on creation).
const BackgroundCount = 6

type Group struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	Progress     int       `json:"progress"` // 0..MaxGroupProgress
	BackgroundID int       `json:"background_id"`
}

// GroupMember is a member as shown on the group screen: name plus the plant
// rendered in the member grid.
type GroupMember struct {
	UserID     int64          `json:"user_id"`
	Username   string         `json:"username"`
	PlantMatch survey.PlantID `json:"plant_match"`
	JoinedAt   time.Time      `json:"joined_at"`
}

// GroupDetail bundles a group with its member roster.
type GroupDetail struct {
	Group
	Members []GroupMember `json:"members"`
}

type GroupFilter struct {
	MemberID int64
	Limit    int
	Offset   int
}
