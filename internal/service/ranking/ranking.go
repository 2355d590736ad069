// Package ranking filters and orders venue candidates. It is pure: identical
// inputs always produce the identical output slice.
package ranking

import (
	"math"
	"sort"

	"github.com/voyageai/recommender/api/internal/entity"
)

const earthRadiusM = 6371000.0

// Constraints carries the filter and ordering parameters for one request.
type Constraints struct {
	MinRating float64
	Budget    *float64
	Center    entity.LatLng
}

// Budget cut-offs, mapping a numeric ceiling onto the places price ordinals.
const (
	budgetInexpensiveMax = 25
	budgetModerateMax    = 75
	budgetExpensiveMax   = 150
)

// Rank removes candidates below the rating threshold or above the
// budget-derived price ceiling, then orders the survivors by rating
// descending, proximity to the center ascending, and finally name so the
// result is fully deterministic. The input slice is never mutated.
func Rank(candidates []entity.Candidate, c Constraints) []entity.Candidate {
	ceiling := priceCeiling(c.Budget)

	kept := make([]entity.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Rating < c.MinRating {
			continue
		}
		if ceiling > 0 && candidate.PriceLevel > ceiling {
			continue
		}
		kept = append(kept, candidate)
	}

	hasCenter := c.Center != (entity.LatLng{})
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Rating != kept[j].Rating {
			return kept[i].Rating > kept[j].Rating
		}
		if hasCenter {
			di := Haversine(c.Center, kept[i].Location)
			dj := Haversine(c.Center, kept[j].Location)
			if di != dj {
				return di < dj
			}
		}
		return kept[i].Name < kept[j].Name
	})

	return kept
}

// priceCeiling converts a budget into the highest admissible price level.
// Candidates with an unknown price level always pass.
func priceCeiling(budget *float64) int {
	if budget == nil || *budget <= 0 {
		return 0
	}
	switch {
	case *budget <= budgetInexpensiveMax:
		return entity.PriceLevelInexpensive
	case *budget <= budgetModerateMax:
		return entity.PriceLevelModerate
	case *budget <= budgetExpensiveMax:
		return entity.PriceLevelExpensive
	default:
		return entity.PriceLevelVeryExpensive
	}
}

// Haversine returns the great-circle distance between two coordinates in meters.
func Haversine(a, b entity.LatLng) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}
