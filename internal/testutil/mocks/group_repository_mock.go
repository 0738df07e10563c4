package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ngabriel/sproutquest/internal/models"
)

// MockGroupRepository is a mock implementation of repository.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Insert(ctx context.Context, group models.Group) (int64, error) {
	args := m.Called(ctx, group)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGroupRepository) Get(ctx context.Context, id int64) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) List(ctx context.Context, filter models.GroupFilter) ([]models.Group, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) Members(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GroupMember), args.Error(1)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) IncrementProgress(ctx context.Context, groupID int64) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}
