package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voyageai/recommender/api/internal/cache"
	"github.com/voyageai/recommender/api/internal/config"
	"github.com/voyageai/recommender/api/internal/entity"
	"github.com/voyageai/recommender/api/internal/metrics"
	"github.com/voyageai/recommender/api/internal/places"
	"github.com/voyageai/recommender/api/internal/service/ranking"
)

// defaultInterests is the fan-out used when a query names a destination but
// no venue types.
var defaultInterests = []string{"hotels", "restaurants", "tourist attractions"}

// IntentExtractor derives structured intent from a query.
type IntentExtractor interface {
	Extract(ctx context.Context, query string) (entity.Intent, error)
}

// CandidateFetcher retrieves venue candidates for an intent.
type CandidateFetcher interface {
	FetchCandidates(ctx context.Context, intent entity.Intent, opts places.SearchOptions) (entity.LatLng, []entity.Candidate, error)
}

// SearchParams are the per-request inputs to the pipeline. MinRating and
// RadiusM fall back to the configured defaults when nil.
type SearchParams struct {
	Query     string
	MinRating *float64
	RadiusM   *int
}

// RecommendService runs the query pipeline: extract intent, fetch candidates,
// filter and rank.
type RecommendService struct {
	extractor IntentExtractor
	fetcher   CandidateFetcher
	store     cache.Store
	logger    *zap.Logger

	defaultMinRating float64
	defaultRadiusM   int
}

// NewRecommendService wires the pipeline stages together.
func NewRecommendService(extractor IntentExtractor, fetcher CandidateFetcher, store cache.Store, logger *zap.Logger, cfg *config.Config) *RecommendService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendService{
		extractor:        extractor,
		fetcher:          fetcher,
		store:            store,
		logger:           logger,
		defaultMinRating: cfg.MinRating,
		defaultRadiusM:   cfg.SearchRadiusM,
	}
}

// cachedFetch is the cache representation of one fetch result.
type cachedFetch struct {
	Center     entity.LatLng      `json:"center"`
	Candidates []entity.Candidate `json:"candidates"`
}

// Recommend executes the pipeline for one query. The returned intent is the
// structured interpretation that drove the search, for display alongside the
// results.
func (s *RecommendService) Recommend(ctx context.Context, params SearchParams) (entity.RankedResult, entity.Intent, error) {
	start := time.Now()
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}()

	query := strings.TrimSpace(params.Query)
	if query == "" {
		metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		return entity.RankedResult{}, entity.Intent{}, ErrEmptyQuery
	}

	intent, err := s.extractor.Extract(ctx, query)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeExtraction).Inc()
		s.logger.Warn("intent extraction failed", zap.String("query", query), zap.Error(err))
		return entity.RankedResult{}, entity.Intent{}, err
	}

	intent = intent.Normalize()
	if !intent.HasSignal() {
		metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		return entity.RankedResult{}, intent, ErrMissingSignal
	}
	if len(intent.Interests) == 0 {
		intent.Interests = defaultInterests
	}

	minRating := s.defaultMinRating
	if params.MinRating != nil {
		minRating = *params.MinRating
	}
	radius := s.defaultRadiusM
	if params.RadiusM != nil {
		radius = config.ClampRadius(*params.RadiusM)
	}

	center, candidates, err := s.fetchWithCache(ctx, intent, places.SearchOptions{MinRating: minRating, RadiusM: radius})
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeFetch).Inc()
		s.logger.Warn("candidate fetch failed", zap.String("location", intent.Location), zap.Error(err))
		return entity.RankedResult{}, intent, err
	}

	ranked := ranking.Rank(candidates, ranking.Constraints{
		MinRating: minRating,
		Budget:    intent.Budget,
		Center:    center,
	})
	if len(ranked) == 0 {
		metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeNoResults).Inc()
		return entity.RankedResult{}, intent, ErrNoResults
	}

	metrics.RecommendationRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	s.logger.Info("recommendation served",
		zap.String("location", intent.Location),
		zap.Strings("interests", intent.Interests),
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(ranked)),
	)

	return entity.RankedResult{Center: center, Candidates: ranked}, intent, nil
}

func (s *RecommendService) fetchWithCache(ctx context.Context, intent entity.Intent, opts places.SearchOptions) (entity.LatLng, []entity.Candidate, error) {
	if s.store == nil {
		return s.fetcher.FetchCandidates(ctx, intent, opts)
	}

	key := cache.SearchKey(intent.Location, intent.Interests, opts.MinRating, opts.RadiusM)
	if data, found := s.store.Get(ctx, key); found {
		var entry cachedFetch
		if err := json.Unmarshal(data, &entry); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return entry.Center, entry.Candidates, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	center, candidates, err := s.fetcher.FetchCandidates(ctx, intent, opts)
	if err != nil {
		return entity.LatLng{}, nil, err
	}

	if data, err := json.Marshal(cachedFetch{Center: center, Candidates: candidates}); err == nil {
		s.store.Set(ctx, key, data)
	}
	return center, candidates, nil
}

// IsRejection reports whether the error is a user-input rejection rather than
// an upstream failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrMissingSignal)
}
