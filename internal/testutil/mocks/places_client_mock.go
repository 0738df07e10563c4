package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ngabriel/sproutquest/internal/places"
)

// MockPlacesClient is a mock implementation of places.ClientInterface
type MockPlacesClient struct {
	mock.Mock
}

func (m *MockPlacesClient) Nearby(ctx context.Context, lat, lon float64) ([]places.POI, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]places.POI), args.Error(1)
}
