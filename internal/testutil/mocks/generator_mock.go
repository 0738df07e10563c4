package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ngabriel/sproutquest/internal/tripgen"
)

// MockGenerator is a mock implementation of tripgen.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req tripgen.Request) (*tripgen.Plan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tripgen.Plan), args.Error(1)
}
