package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/voyageai/recommender/api/internal/entity"
	"github.com/voyageai/recommender/api/internal/llm"
	"github.com/voyageai/recommender/api/internal/places"
	"github.com/voyageai/recommender/api/internal/service"
)

type fakeRecommender struct {
	result entity.RankedResult
	intent entity.Intent
	err    error
	calls  int
	last   service.SearchParams
}

func (f *fakeRecommender) Recommend(_ context.Context, params service.SearchParams) (entity.RankedResult, entity.Intent, error) {
	f.calls++
	f.last = params
	return f.result, f.intent, f.err
}

func newJSONContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRecommendHandler_Validation(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	fake := &fakeRecommender{}
	h := NewRecommendHandler(fake)

	t.Run("invalid payload", func(t *testing.T) {
		c, rec := newJSONContext(e, "{")
		_ = h.Recommend(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		c, rec := newJSONContext(e, `{"min_rating": 4}`)
		_ = h.Recommend(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("min rating out of range", func(t *testing.T) {
		c, rec := newJSONContext(e, `{"query": "rome", "min_rating": 9}`)
		_ = h.Recommend(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	if fake.calls != 0 {
		t.Fatalf("expected no pipeline runs for invalid requests, got %d", fake.calls)
	}
}

func TestRecommendHandler_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	fake := &fakeRecommender{
		result: entity.RankedResult{
			Center: entity.LatLng{Latitude: 41.9, Longitude: 12.49},
			Candidates: []entity.Candidate{
				{ID: "places/c", Name: "Osteria C", Rating: 4.8},
				{ID: "places/a", Name: "Osteria A", Rating: 4.5},
			},
		},
		intent: entity.Intent{Location: "Rome", Interests: []string{"restaurants"}},
	}
	h := NewRecommendHandler(fake)

	c, rec := newJSONContext(e, `{"query": "restaurants in Rome", "min_rating": 3.5, "radius_m": 2000}`)
	if err := h.Recommend(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if fake.last.Query != "restaurants in Rome" {
		t.Fatalf("unexpected query: %s", fake.last.Query)
	}
	if fake.last.MinRating == nil || *fake.last.MinRating != 3.5 {
		t.Fatalf("expected min_rating override to be forwarded")
	}
	if fake.last.RadiusM == nil || *fake.last.RadiusM != 2000 {
		t.Fatalf("expected radius override to be forwarded")
	}

	var payload struct {
		Status string `json:"status"`
		Data   struct {
			Count   int `json:"count"`
			Results []struct {
				Name   string  `json:"name"`
				Rating float64 `json:"rating"`
			} `json:"results"`
			Intent struct {
				Location string `json:"location"`
			} `json:"intent"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Status != "success" || payload.Data.Count != 2 {
		t.Fatalf("unexpected envelope: %+v", payload)
	}
	if payload.Data.Results[0].Rating != 4.8 {
		t.Fatalf("expected best-rated first, got %+v", payload.Data.Results)
	}
	if payload.Data.Intent.Location != "Rome" {
		t.Fatalf("expected intent echoed back, got %+v", payload.Data.Intent)
	}
}

func TestRecommendHandler_ErrorMapping(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"rejection", service.ErrMissingSignal, http.StatusBadRequest},
		{"empty query", service.ErrEmptyQuery, http.StatusBadRequest},
		{"no results", service.ErrNoResults, http.StatusNotFound},
		{"extraction error", &llm.ExtractionError{Reason: "model call failed"}, http.StatusBadGateway},
		{"fetch error", &places.FetchError{Operation: "search", Status: 403}, http.StatusBadGateway},
		{"unknown error", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRecommendHandler(&fakeRecommender{err: tc.err})
			c, rec := newJSONContext(e, `{"query": "restaurants in Rome"}`)
			_ = h.Recommend(c)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}

			var payload APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload.Status != "error" || payload.Message == "" {
				t.Fatalf("expected error envelope with message, got %+v", payload)
			}
		})
	}
}
