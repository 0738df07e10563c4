package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ngabriel/sproutquest/internal/logger"
)

// Categories queried for trip planning. Each one is fetched separately so a
// slow or failing category does not starve the others of their result quota.
var Categories = []string{
	"entertainment",
	"catering",
	"commercial",
	"leisure",
	"natural",
	"tourism",
	"sport",
}

const baseURL = "https://api.geoapify.com/v2/places"

type Client struct {
	httpClient *http.Client
	apiKey     string
	radius     int // meters
	limit      int // per category
	log        *logger.Logger
}

func New(apiKey string, radiusMeters, limit int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		radius:     radiusMeters,
		limit:      limit,
		log:        logger.Default().WithPrefix("geoapify"),
	}
}

// POI is one point of interest near the trip location.
type POI struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type featureCollection struct {
	Features []struct {
		Properties struct {
			Name      string  `json:"name"`
			Formatted string  `json:"formatted"`
			Lat       float64 `json:"lat"`
			Lon       float64 `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

// Nearby fetches points of interest around the given coordinate, one request
// per category, concurrently. Categories that return an error fail the whole
// call.
func (c *Client) Nearby(ctx context.Context, lat, lon float64) ([]POI, error) {
	log := logger.FromContext(ctx).WithPrefix("geoapify")
	log.Debug("fetching places: lat=%f, lon=%f, radius=%dm", lat, lon, c.radius)
	start := time.Now()

	var mu sync.Mutex
	var all []POI

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range Categories {
		g.Go(func() error {
			pois, err := c.fetchCategory(gctx, category, lat, lon)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, pois...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("fetched %d places in %v", len(all), time.Since(start))
	return all, nil
}

func (c *Client) fetchCategory(ctx context.Context, category string, lat, lon float64) ([]POI, error) {
	log := logger.FromContext(ctx).WithPrefix("geoapify").WithField("category", category)

	q := url.Values{}
	q.Set("categories", category)
	// Geoapify filters are lon,lat order
	q.Set("filter", fmt.Sprintf("circle:%f,%f,%d", lon, lat, c.radius))
	q.Set("limit", fmt.Sprintf("%d", c.limit))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch places: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("places request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("places status %d: %s", resp.StatusCode, string(body))
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		log.Error("failed to decode places response: %v", err)
		return nil, err
	}

	pois := make([]POI, 0, len(fc.Features))
	for _, f := range fc.Features {
		name := f.Properties.Name
		if name == "" {
			name = "Unnamed place"
		}
		pois = append(pois, POI{
			Name:     name,
			Category: category,
			Address:  f.Properties.Formatted,
			Lat:      f.Properties.Lat,
			Lon:      f.Properties.Lon,
		})
	}

	log.Debug("category %s returned %d places", category, len(pois))
	return pois, nil
}
