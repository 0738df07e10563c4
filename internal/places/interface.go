package places

import "context"

// ClientInterface defines the interface for place lookups.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	Nearby(ctx context.Context, lat, lon float64) ([]POI, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
