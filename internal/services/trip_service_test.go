package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/quest"
	"github.com/ngabriel/sproutquest/internal/services"
	"github.com/ngabriel/sproutquest/internal/survey"
	"github.com/ngabriel/sproutquest/internal/testutil/mocks"
	"github.com/ngabriel/sproutquest/internal/worker"
)

type tripFixture struct {
	tripRepo  *mocks.MockTripRepository
	groupRepo *mocks.MockGroupRepository
	userRepo  *mocks.MockUserRepository
	pool      *worker.Pool
	svc       services.TripService
}

func newTripFixture(t *testing.T) *tripFixture {
	f := &tripFixture{
		tripRepo:  new(mocks.MockTripRepository),
		groupRepo: new(mocks.MockGroupRepository),
		userRepo:  new(mocks.MockUserRepository),
		pool:      worker.NewPool(1, 4),
	}
	groupSvc := services.NewGroupService(f.groupRepo, f.userRepo)
	f.svc = services.NewTripService(
		f.tripRepo, f.groupRepo, f.userRepo, groupSvc,
		new(mocks.MockGenerator), new(mocks.MockPlacesClient), f.pool,
		quest.NewRoller(42), 2, 3,
	)
	return f
}

func pendingQuest(id int64, seq int) *models.TripQuest {
	return &models.TripQuest{
		ID:              id,
		TripID:          1,
		Seq:             seq,
		EasyDescription: "Walk the short trail",
		HardDescription: "Walk the full loop",
		CheckValue:      10,
		Attribute:       survey.CategoryAdventurous,
		State:           models.QuestStatePending,
	}
}

func TestPlanTrip(t *testing.T) {
	f := newTripFixture(t)

	f.groupRepo.On("Get", mock.Anything, int64(10)).Return(&models.Group{ID: 10, Name: "Garden Gang"}, nil)
	f.groupRepo.On("IsMember", mock.Anything, int64(10), int64(1)).Return(true, nil)
	f.tripRepo.On("Insert", mock.Anything, mock.MatchedBy(func(tr models.Trip) bool {
		return tr.GroupID == 10 &&
			tr.Status == models.TripStatusPlanning &&
			tr.TotalQuests == 2 &&
			tr.PassingThreshold == 3
	})).Return(int64(1), nil)
	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(&models.Trip{
		ID: 1, GroupID: 10, Status: models.TripStatusPlanning,
	}, nil)

	trip, err := f.svc.PlanTrip(context.Background(), services.PlanTripRequest{
		GroupID: 10, UserID: 1, Lat: 41.15, Lon: -8.61,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusPlanning, trip.Status)
	assert.Equal(t, 1, f.pool.QueueSize())
	f.tripRepo.AssertExpectations(t)
}

func TestPlanTrip_NotAMember(t *testing.T) {
	f := newTripFixture(t)

	f.groupRepo.On("Get", mock.Anything, int64(10)).Return(&models.Group{ID: 10}, nil)
	f.groupRepo.On("IsMember", mock.Anything, int64(10), int64(1)).Return(false, nil)

	_, err := f.svc.PlanTrip(context.Background(), services.PlanTripRequest{GroupID: 10, UserID: 1})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	f.tripRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestStartTrip_Transitions(t *testing.T) {
	f := newTripFixture(t)

	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(&models.Trip{
		ID: 1, Status: models.TripStatusReady, TotalQuests: 2,
	}, nil)
	f.tripRepo.On("UpdateStatus", mock.Anything, int64(1), models.TripStatusActive).Return(nil)
	f.tripRepo.On("Quests", mock.Anything, int64(1)).Return([]models.TripQuest{}, nil)

	_, err := f.svc.StartTrip(context.Background(), 1, 1)
	require.NoError(t, err)
	f.tripRepo.AssertExpectations(t)
}

func TestStartTrip_StillGenerating(t *testing.T) {
	f := newTripFixture(t)

	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(&models.Trip{
		ID: 1, Status: models.TripStatusPlanning,
	}, nil)

	_, err := f.svc.StartTrip(context.Background(), 1, 1)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestRollQuest(t *testing.T) {
	f := newTripFixture(t)

	activeTrip := &models.Trip{ID: 1, GroupID: 10, Status: models.TripStatusActive, TotalQuests: 2}
	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(activeTrip, nil)
	f.tripRepo.On("GetQuest", mock.Anything, int64(1), 1).Return(pendingQuest(100, 1), nil).Once()

	f.userRepo.On("Get", mock.Anything, int64(1)).Return(&models.User{ID: 1}, nil)
	f.tripRepo.On("RecordRoll", mock.Anything, int64(100), mock.MatchedBy(func(res quest.Resolution) bool {
		return res.Roll >= 1 && res.Roll <= 20 && !res.BonusApplied
	})).Return(nil)

	rolled := pendingQuest(100, 1)
	rolled.State = models.QuestStateRolled
	f.tripRepo.On("GetQuest", mock.Anything, int64(1), 1).Return(rolled, nil)

	result, err := f.svc.RollQuest(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, models.QuestStateRolled, result.Quest.State)
	f.tripRepo.AssertExpectations(t)
}

func TestRollQuest_TripNotActive(t *testing.T) {
	f := newTripFixture(t)

	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(&models.Trip{
		ID: 1, Status: models.TripStatusReady,
	}, nil)

	_, err := f.svc.RollQuest(context.Background(), 1, 1, 1)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestRollQuest_AlreadyRolled(t *testing.T) {
	f := newTripFixture(t)

	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(&models.Trip{
		ID: 1, Status: models.TripStatusActive,
	}, nil)
	rolled := pendingQuest(100, 1)
	rolled.State = models.QuestStateRolled
	f.tripRepo.On("GetQuest", mock.Anything, int64(1), 1).Return(rolled, nil)

	_, err := f.svc.RollQuest(context.Background(), 1, 1, 1)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestCompleteQuest_FinalQuestFinalizesTrip(t *testing.T) {
	f := newTripFixture(t)

	points := 2
	rolled := pendingQuest(100, 2)
	rolled.State = models.QuestStateRolled
	rolled.PointValue = &points

	active := &models.Trip{
		ID: 1, GroupID: 10, Status: models.TripStatusActive,
		PointTotal: 2, QuestsResolved: 1, TotalQuests: 2, PassingThreshold: 3,
	}
	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(active, nil).Once()
	f.tripRepo.On("GetQuest", mock.Anything, int64(1), 2).Return(rolled, nil)
	f.tripRepo.On("ResolveQuest", mock.Anything, int64(1), int64(100), models.QuestStateCompleted, 2).Return(nil)

	// after resolution every quest is resolved and the threshold is met
	finished := &models.Trip{
		ID: 1, GroupID: 10, Status: models.TripStatusActive,
		PointTotal: 4, QuestsResolved: 2, TotalQuests: 2, PassingThreshold: 3,
	}
	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(finished, nil)
	f.tripRepo.On("Finalize", mock.Anything, int64(1), quest.TripOutcome{Success: true, PointTotal: 4}).Return(nil)
	f.groupRepo.On("IncrementProgress", mock.Anything, int64(10)).Return(1, nil)
	f.tripRepo.On("Quests", mock.Anything, int64(1)).Return([]models.TripQuest{}, nil)

	_, err := f.svc.CompleteQuest(context.Background(), 1, 2)
	require.NoError(t, err)
	f.tripRepo.AssertExpectations(t)
	f.groupRepo.AssertExpectations(t)
}

func TestSkipQuest_FailedTripLeavesGarden(t *testing.T) {
	f := newTripFixture(t)

	tq := pendingQuest(100, 2)

	active := &models.Trip{
		ID: 1, GroupID: 10, Status: models.TripStatusActive,
		PointTotal: 1, QuestsResolved: 1, TotalQuests: 2, PassingThreshold: 3,
	}
	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(active, nil).Once()
	f.tripRepo.On("GetQuest", mock.Anything, int64(1), 2).Return(tq, nil)
	f.tripRepo.On("ResolveQuest", mock.Anything, int64(1), int64(100), models.QuestStateSkipped, 0).Return(nil)

	// one point is below the threshold of three
	finished := &models.Trip{
		ID: 1, GroupID: 10, Status: models.TripStatusActive,
		PointTotal: 1, QuestsResolved: 2, TotalQuests: 2, PassingThreshold: 3,
	}
	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(finished, nil)
	f.tripRepo.On("Finalize", mock.Anything, int64(1), quest.TripOutcome{Success: false, PointTotal: 1}).Return(nil)
	f.groupRepo.On("Get", mock.Anything, int64(10)).Return(&models.Group{ID: 10, Progress: 2}, nil)
	f.tripRepo.On("Quests", mock.Anything, int64(1)).Return([]models.TripQuest{}, nil)

	_, err := f.svc.SkipQuest(context.Background(), 1, 2)
	require.NoError(t, err)
	f.groupRepo.AssertNotCalled(t, "IncrementProgress", mock.Anything, mock.Anything)
}

func TestCompleteQuest_NotRolled(t *testing.T) {
	f := newTripFixture(t)

	f.tripRepo.On("Get", mock.Anything, int64(1)).Return(&models.Trip{
		ID: 1, Status: models.TripStatusActive,
	}, nil)
	f.tripRepo.On("GetQuest", mock.Anything, int64(1), 1).Return(pendingQuest(100, 1), nil)

	_, err := f.svc.CompleteQuest(context.Background(), 1, 1)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}
