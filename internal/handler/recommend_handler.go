package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyageai/recommender/api/internal/dto"
	"github.com/voyageai/recommender/api/internal/entity"
	"github.com/voyageai/recommender/api/internal/llm"
	"github.com/voyageai/recommender/api/internal/places"
	"github.com/voyageai/recommender/api/internal/service"
)

// Recommender runs the query pipeline for one request.
type Recommender interface {
	Recommend(ctx context.Context, params service.SearchParams) (entity.RankedResult, entity.Intent, error)
}

// RecommendHandler serves the JSON recommendation endpoint.
type RecommendHandler struct {
	service Recommender
}

// NewRecommendHandler constructs the handler.
func NewRecommendHandler(svc Recommender) *RecommendHandler {
	return &RecommendHandler{service: svc}
}

// Recommend handles POST /recommendations.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	var req dto.RecommendRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return Error(c, http.StatusBadRequest, "query is required and min_rating must be between 0 and 5")
	}

	result, intent, err := h.service.Recommend(c.Request().Context(), service.SearchParams{
		Query:     req.Query,
		MinRating: req.MinRating,
		RadiusM:   req.RadiusM,
	})
	if err != nil {
		status, message := pipelineErrorStatus(err)
		return Error(c, status, message)
	}

	return Success(c, http.StatusOK, "recommendations ready", dto.RecommendResponse{
		Intent:  intent,
		Center:  result.Center,
		Count:   len(result.Candidates),
		Results: result.Candidates,
	})
}

// pipelineErrorStatus maps the pipeline error taxonomy onto HTTP statuses and
// user-facing messages. Raw upstream errors are never exposed.
func pipelineErrorStatus(err error) (int, string) {
	var exErr *llm.ExtractionError
	var fetchErr *places.FetchError

	switch {
	case service.IsRejection(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNoResults):
		return http.StatusNotFound, "no places matched your search, try widening the radius or lowering the minimum rating"
	case errors.As(err, &exErr):
		return http.StatusBadGateway, "could not interpret the query, please try rephrasing it"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "places lookup failed, please try again later"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
