package entity

// Price levels follow the Places API ordinal scale. Zero means the venue did
// not report one.
const (
	PriceLevelUnknown       = 0
	PriceLevelInexpensive   = 1
	PriceLevelModerate      = 2
	PriceLevelExpensive     = 3
	PriceLevelVeryExpensive = 4
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Candidate is one venue returned by the places data source. It is immutable
// once fetched; filtering and ranking copy slices rather than mutating fields.
type Candidate struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Address         string  `json:"address,omitempty"`
	Rating          float64 `json:"rating"`
	UserRatingCount int     `json:"user_rating_count"`
	PriceLevel      int     `json:"price_level"`
	Location        LatLng  `json:"location"`
	Website         string  `json:"website,omitempty"`
	MapsURI         string  `json:"maps_uri,omitempty"`
}

// RankedResult is the filtered, ordered candidate list for a single request,
// together with the bias center the proximity ordering was computed against.
type RankedResult struct {
	Center     LatLng      `json:"center"`
	Candidates []Candidate `json:"candidates"`
}
