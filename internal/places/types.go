package places

import (
	"github.com/voyageai/recommender/api/internal/entity"
)

// Field masks mirror the two request shapes the service issues: a cheap
// geocode lookup and the full venue search.
const (
	geocodeFieldMask = "places.location"
	searchFieldMask  = "places.name,places.displayName,places.formattedAddress,places.priceLevel,places.rating,places.userRatingCount,places.websiteUri,places.location,places.googleMapsUri"
)

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

// searchTextRequest is the places:searchText request body.
type searchTextRequest struct {
	TextQuery      string        `json:"textQuery"`
	MinRating      float64       `json:"minRating,omitempty"`
	MaxResultCount int           `json:"maxResultCount,omitempty"`
	LocationBias   *locationBias `json:"locationBias,omitempty"`
}

type localizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type placeResult struct {
	Name             string        `json:"name"`
	DisplayName      localizedText `json:"displayName"`
	FormattedAddress string        `json:"formattedAddress"`
	Rating           float64       `json:"rating"`
	UserRatingCount  int           `json:"userRatingCount"`
	PriceLevel       string        `json:"priceLevel"`
	WebsiteURI       string        `json:"websiteUri"`
	GoogleMapsURI    string        `json:"googleMapsUri"`
	Location         latLng        `json:"location"`
}

type searchTextResponse struct {
	Places []placeResult `json:"places"`
}

// priceLevelOrdinal maps the API's enum onto the ordinal scale used by the
// ranking filter. Unknown strings map to unknown rather than failing the fetch.
func priceLevelOrdinal(level string) int {
	switch level {
	case "PRICE_LEVEL_FREE", "PRICE_LEVEL_INEXPENSIVE":
		return entity.PriceLevelInexpensive
	case "PRICE_LEVEL_MODERATE":
		return entity.PriceLevelModerate
	case "PRICE_LEVEL_EXPENSIVE":
		return entity.PriceLevelExpensive
	case "PRICE_LEVEL_VERY_EXPENSIVE":
		return entity.PriceLevelVeryExpensive
	default:
		return entity.PriceLevelUnknown
	}
}

func (p placeResult) toCandidate(category string) entity.Candidate {
	return entity.Candidate{
		ID:              p.Name,
		Name:            p.DisplayName.Text,
		Category:        category,
		Address:         p.FormattedAddress,
		Rating:          p.Rating,
		UserRatingCount: p.UserRatingCount,
		PriceLevel:      priceLevelOrdinal(p.PriceLevel),
		Location: entity.LatLng{
			Latitude:  p.Location.Latitude,
			Longitude: p.Location.Longitude,
		},
		Website: p.WebsiteURI,
		MapsURI: p.GoogleMapsURI,
	}
}
