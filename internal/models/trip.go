package models

import (
	"time"

	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/survey"
)

// Trip statuses.
const (
	TripStatusPlanning  = "planning"  // generation job queued or running
	TripStatusFailed    = "failed"    // generation failed; no quests persisted
	TripStatusReady     = "ready"     // plan and quests persisted, not started
	TripStatusActive    = "active"    // player is resolving quests
	TripStatusCompleted = "completed" // all quests resolved or skipped
)

// Quest states within an active trip.
const (
	QuestStatePending   = "pending"
	QuestStateRolled    = "rolled"
	QuestStateCompleted = "completed"
	QuestStateSkipped   = "skipped"
)

type Trip struct {
	ID               int64      `json:"id"`
	GroupID          int64      `json:"group_id"`
	UserID           int64      `json:"user_id"`
	Status           string     `json:"status"`
	PlanText         string     `json:"plan_text"`
	GenerationError  string     `json:"generation_error,omitempty"`
	PointTotal       int        `json:"point_total"`
	QuestsResolved   int        `json:"quests_resolved"`
	TotalQuests      int        `json:"total_quests"`
	PassingThreshold int        `json:"passing_threshold"`
	Success          *bool      `json:"success"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

// Progress projects the trip's accumulator into the quest package's shape.
func (t *Trip) Progress() quest.Progress {
	return quest.Progress{
		PointTotal:     t.PointTotal,
		QuestsResolved: t.QuestsResolved,
		TotalQuests:    t.TotalQuests,
	}
}

// TripQuest is one persisted side quest, including its resolution once
// rolled.
type TripQuest struct {
	ID              int64           `json:"id"`
	TripID          int64           `json:"trip_id"`
	Seq             int             `json:"seq"` // 1-based position in the trip
	EasyDescription string          `json:"easy_description"`
	HardDescription string          `json:"hard_description"`
	CheckValue      int             `json:"check_value"`
	Attribute       survey.Category `json:"attribute"`
	State           string          `json:"state"`
	Roll            *int            `json:"roll"`
	FinalRoll       *int            `json:"final_roll"`
	BonusApplied    bool            `json:"bonus_applied"`
	Outcome         *quest.Outcome  `json:"outcome"`
	PointValue      *int            `json:"point_value"`
}

// SideQuest converts the stored row back into the resolver's input shape.
func (q *TripQuest) SideQuest() quest.SideQuest {
	return quest.SideQuest{
		EasyDescription: q.EasyDescription,
		HardDescription: q.HardDescription,
		CheckValue:      q.CheckValue,
		Attribute:       q.Attribute,
	}
}

// TripDetail bundles a trip with its quest list.
type TripDetail struct {
	Trip
	Quests []TripQuest `json:"quests"`
}

type TripFilter struct {
	GroupID int64
	UserID  int64
	Status  string
	Limit   int
	Offset  int
}
