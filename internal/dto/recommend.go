package dto

import "github.com/voyageai/recommender/api/internal/entity"

// RecommendRequest is the payload used by the recommendation endpoint.
type RecommendRequest struct {
	Query     string   `json:"query" validate:"required"`
	MinRating *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	RadiusM   *int     `json:"radius_m,omitempty" validate:"omitempty,gt=0"`
}

// RecommendResponse carries the interpreted intent together with the ranked
// venue list.
type RecommendResponse struct {
	Intent  entity.Intent      `json:"intent"`
	Center  entity.LatLng      `json:"center"`
	Count   int                `json:"count"`
	Results []entity.Candidate `json:"results"`
}
