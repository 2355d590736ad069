package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/voyageai/recommender/api/internal/entity"
)

// DefaultBaseURL is the production places:searchText endpoint.
const DefaultBaseURL = "https://places.googleapis.com/v1/places:searchText"

const maxAttempts = 3

// FetchError reports a failed places API call.
type FetchError struct {
	Operation string
	Status    int
	Err       error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("places %s failed: status %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("places %s failed: %v", e.Operation, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SearchOptions carries per-request tuning for a candidate search.
type SearchOptions struct {
	MinRating float64
	RadiusM   int
}

// Client calls the Places API text-search endpoint.
type Client struct {
	client        *http.Client
	apiKey        string
	baseURL       string
	retryInterval time.Duration
}

// ClientOption configures optional client behavior.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (useful for tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRetryInterval overrides the initial backoff interval.
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryInterval = d
	}
}

// NewClient builds a places client. A nil http.Client gets a default timeout.
func NewClient(client *http.Client, apiKey string, opts ...ClientOption) *Client {
	if apiKey == "" {
		panic("places api key must not be empty")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		client:        client,
		apiKey:        apiKey,
		baseURL:       DefaultBaseURL,
		retryInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves a destination to a bias center using a single-result
// text search.
func (c *Client) Geocode(ctx context.Context, location string) (entity.LatLng, error) {
	resp, err := c.searchText(ctx, "geocode", searchTextRequest{
		TextQuery:      location,
		MaxResultCount: 1,
	}, geocodeFieldMask)
	if err != nil {
		return entity.LatLng{}, err
	}
	if len(resp.Places) == 0 {
		return entity.LatLng{}, &FetchError{Operation: "geocode", Err: fmt.Errorf("no match for location %q", location)}
	}
	loc := resp.Places[0].Location
	return entity.LatLng{Latitude: loc.Latitude, Longitude: loc.Longitude}, nil
}

// Search runs one venue text search biased around the given center. The category
// tag is attached to every returned candidate.
func (c *Client) Search(ctx context.Context, query, category string, center entity.LatLng, opts SearchOptions) ([]entity.Candidate, error) {
	req := searchTextRequest{
		TextQuery: query,
		MinRating: opts.MinRating,
	}
	if center != (entity.LatLng{}) {
		req.LocationBias = &locationBias{
			Circle: circle{
				Center: latLng{Latitude: center.Latitude, Longitude: center.Longitude},
				Radius: float64(opts.RadiusM),
			},
		}
	}

	resp, err := c.searchText(ctx, "search", req, searchFieldMask)
	if err != nil {
		return nil, err
	}

	candidates := make([]entity.Candidate, 0, len(resp.Places))
	for _, place := range resp.Places {
		candidates = append(candidates, place.toCandidate(category))
	}
	return candidates, nil
}

// FetchCandidates resolves the intent's location and runs one search per
// interest tag, merging and deduplicating results by place resource name.
func (c *Client) FetchCandidates(ctx context.Context, intent entity.Intent, opts SearchOptions) (entity.LatLng, []entity.Candidate, error) {
	var center entity.LatLng
	if intent.Location != "" {
		resolved, err := c.Geocode(ctx, intent.Location)
		if err != nil {
			return entity.LatLng{}, nil, err
		}
		center = resolved
	}

	seen := map[string]bool{}
	var merged []entity.Candidate
	for _, interest := range intent.Interests {
		query := interest
		if intent.Location != "" {
			query = fmt.Sprintf("%s near %s", interest, intent.Location)
		}
		found, err := c.Search(ctx, query, interest, center, opts)
		if err != nil {
			return entity.LatLng{}, nil, err
		}
		for _, candidate := range found {
			if candidate.ID != "" && seen[candidate.ID] {
				continue
			}
			seen[candidate.ID] = true
			merged = append(merged, candidate)
		}
	}
	return center, merged, nil
}

func (c *Client) searchText(ctx context.Context, operation string, payload searchTextRequest, fieldMask string) (searchTextResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return searchTextResponse{}, &FetchError{Operation: operation, Err: err}
	}

	var out searchTextResponse
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(&FetchError{Operation: operation, Err: err})
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Goog-Api-Key", c.apiKey)
		req.Header.Set("X-Goog-FieldMask", fieldMask)

		resp, err := c.client.Do(req)
		if err != nil {
			return &FetchError{Operation: operation, Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			fetchErr := &FetchError{Operation: operation, Status: resp.StatusCode}
			// Client-side errors (bad key, malformed query) will not heal on retry.
			if resp.StatusCode < 500 {
				return backoff.Permanent(fetchErr)
			}
			return fetchErr
		}

		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
			return backoff.Permanent(&FetchError{Operation: operation, Err: fmt.Errorf("could not decode response: %w", err)})
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	err = backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, maxAttempts-1), ctx))
	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			err = &FetchError{Operation: operation, Err: err}
		}
		return searchTextResponse{}, err
	}
	return out, nil
}
