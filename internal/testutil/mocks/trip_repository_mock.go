package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/quest"
)

// MockTripRepository is a mock implementation of repository.TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Insert(ctx context.Context, trip models.Trip) (int64, error) {
	args := m.Called(ctx, trip)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTripRepository) Get(ctx context.Context, id int64) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripRepository) List(ctx context.Context, filter models.TripFilter) ([]models.Trip, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripRepository) Quests(ctx context.Context, tripID int64) ([]models.TripQuest, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TripQuest), args.Error(1)
}

func (m *MockTripRepository) GetQuest(ctx context.Context, tripID int64, seq int) (*models.TripQuest, error) {
	args := m.Called(ctx, tripID, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripQuest), args.Error(1)
}

func (m *MockTripRepository) MarkReady(ctx context.Context, tripID int64, planText string, quests []quest.SideQuest) error {
	args := m.Called(ctx, tripID, planText, quests)
	return args.Error(0)
}

func (m *MockTripRepository) MarkFailed(ctx context.Context, tripID int64, genErr string) error {
	args := m.Called(ctx, tripID, genErr)
	return args.Error(0)
}

func (m *MockTripRepository) UpdateStatus(ctx context.Context, tripID int64, status string) error {
	args := m.Called(ctx, tripID, status)
	return args.Error(0)
}

func (m *MockTripRepository) RecordRoll(ctx context.Context, questID int64, res quest.Resolution) error {
	args := m.Called(ctx, questID, res)
	return args.Error(0)
}

func (m *MockTripRepository) ResolveQuest(ctx context.Context, tripID, questID int64, state string, pointDelta int) error {
	args := m.Called(ctx, tripID, questID, state, pointDelta)
	return args.Error(0)
}

func (m *MockTripRepository) Finalize(ctx context.Context, tripID int64, outcome quest.TripOutcome) error {
	args := m.Called(ctx, tripID, outcome)
	return args.Error(0)
}
