package repository

import (
	"context"
	"errors"

	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/quest"
)

// ErrSurveyAlreadyCompleted indicates the user already has a plant match.
// The match is write-once; retaking the survey is rejected.
var ErrSurveyAlreadyCompleted = errors.New("survey already completed for user")

// ErrGroupNotFound indicates an operation referenced a group id with no row.
var ErrGroupNotFound = errors.New("group not found")

// ErrTripStateConflict indicates a trip transition found the trip in an
// unexpected status, e.g. finalizing a trip that is not active.
var ErrTripStateConflict = errors.New("trip is not in the expected status")

// ErrQuestStateConflict indicates a quest transition found the quest in an
// unexpected state, e.g. rolling a quest that was already rolled.
var ErrQuestStateConflict = errors.New("quest is not in the expected state")

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Upsert(ctx context.Context, username, email string) (*models.User, error)
	// CompleteSurvey persists the survey response and stamps the user's
	// personality and plant match in one transaction. Returns
	// ErrSurveyAlreadyCompleted when a plant match already exists.
	CompleteSurvey(ctx context.Context, resp models.SurveyResponse) error
	Delete(ctx context.Context, id int64) error
}

// GroupRepository handles group and membership data access
type GroupRepository interface {
	Insert(ctx context.Context, group models.Group) (int64, error)
	Get(ctx context.Context, id int64) (*models.Group, error)
	List(ctx context.Context, filter models.GroupFilter) ([]models.Group, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	Members(ctx context.Context, groupID int64) ([]models.GroupMember, error)
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	// IncrementProgress atomically advances the garden meter by one, capped
	// at models.MaxGroupProgress, and returns the resulting progress value.
	IncrementProgress(ctx context.Context, groupID int64) (int, error)
}

// TripRepository handles trip and trip-quest data access
type TripRepository interface {
	Insert(ctx context.Context, trip models.Trip) (int64, error)
	Get(ctx context.Context, id int64) (*models.Trip, error)
	List(ctx context.Context, filter models.TripFilter) ([]models.Trip, error)
	Quests(ctx context.Context, tripID int64) ([]models.TripQuest, error)
	GetQuest(ctx context.Context, tripID int64, seq int) (*models.TripQuest, error)
	// MarkReady stores the generated plan and quest list and moves the trip
	// from planning to ready in one transaction.
	MarkReady(ctx context.Context, tripID int64, planText string, quests []quest.SideQuest) error
	MarkFailed(ctx context.Context, tripID int64, genErr string) error
	UpdateStatus(ctx context.Context, tripID int64, status string) error
	// RecordRoll transitions a pending quest to rolled with its resolution.
	RecordRoll(ctx context.Context, questID int64, res quest.Resolution) error
	// ResolveQuest marks a quest completed or skipped and applies the point
	// delta and resolved-count advance to the trip in one transaction.
	ResolveQuest(ctx context.Context, tripID, questID int64, state string, pointDelta int) error
	Finalize(ctx context.Context, tripID int64, outcome quest.TripOutcome) error
}
