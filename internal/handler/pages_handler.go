package handler

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyageai/recommender/api/internal/entity"
	"github.com/voyageai/recommender/api/internal/service"
	"github.com/voyageai/recommender/api/internal/service/ranking"
)

// PagesHandler serves the HTML search form and results page.
type PagesHandler struct {
	service Recommender
}

// NewPagesHandler constructs the page handler.
func NewPagesHandler(svc Recommender) *PagesHandler {
	return &PagesHandler{service: svc}
}

// IndexView is the template payload for the search form.
type IndexView struct {
	Query string
	Error string
}

// ResultView is one rendered venue row.
type ResultView struct {
	Index      int
	Candidate  entity.Candidate
	Color      string
	DistanceKM string
}

// ResultsView is the template payload for the results page.
type ResultsView struct {
	Query       string
	Intent      entity.Intent
	Center      entity.LatLng
	Results     []ResultView
	MarkersJSON template.JS
}

// Index handles GET /.
func (h *PagesHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", IndexView{})
}

// Search handles GET /search and renders the ranked list with a map.
func (h *PagesHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	params := service.SearchParams{Query: query}

	if raw := c.QueryParam("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 5 {
			params.MinRating = &v
		}
	}
	if raw := c.QueryParam("radius_m"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			params.RadiusM = &v
		}
	}

	result, intent, err := h.service.Recommend(c.Request().Context(), params)
	if err != nil {
		status, message := pipelineErrorStatus(err)
		return c.Render(status, "index.html", IndexView{Query: query, Error: message})
	}

	view := ResultsView{
		Query:  query,
		Intent: intent,
		Center: result.Center,
	}

	type marker struct {
		Name   string  `json:"name"`
		Lat    float64 `json:"lat"`
		Lng    float64 `json:"lng"`
		Color  string  `json:"color"`
		Rating float64 `json:"rating"`
	}
	markers := make([]marker, 0, len(result.Candidates))

	for i, candidate := range result.Candidates {
		color := categoryColor(candidate.Category)
		row := ResultView{
			Index:     i + 1,
			Candidate: candidate,
			Color:     color,
		}
		if result.Center != (entity.LatLng{}) && candidate.Location != (entity.LatLng{}) {
			row.DistanceKM = fmt.Sprintf("%.1f", ranking.Haversine(result.Center, candidate.Location)/1000)
		}
		view.Results = append(view.Results, row)
		markers = append(markers, marker{
			Name:   candidate.Name,
			Lat:    candidate.Location.Latitude,
			Lng:    candidate.Location.Longitude,
			Color:  color,
			Rating: candidate.Rating,
		})
	}

	if data, err := json.Marshal(markers); err == nil {
		view.MarkersJSON = template.JS(data)
	}

	return c.Render(http.StatusOK, "results.html", view)
}

// categoryColor mirrors the marker colors of the map view: hotels blue,
// restaurants green, attractions orange.
func categoryColor(category string) string {
	lower := strings.ToLower(category)
	switch {
	case strings.Contains(lower, "hotel") || strings.Contains(lower, "stay"):
		return "blue"
	case strings.Contains(lower, "restaurant") || strings.Contains(lower, "food") || strings.Contains(lower, "eat") || strings.Contains(lower, "cafe"):
		return "green"
	case strings.Contains(lower, "attraction") || strings.Contains(lower, "tourist") || strings.Contains(lower, "museum") || strings.Contains(lower, "sight"):
		return "orange"
	default:
		return "cadetblue"
	}
}
