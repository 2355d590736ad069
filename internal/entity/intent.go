package entity

import "strings"

// Intent is the structured interpretation of a free-text travel query.
type Intent struct {
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
	Budget    *float64 `json:"budget,omitempty"`
}

// HasSignal reports whether the intent carries enough information to search:
// at least a location or one interest.
func (i Intent) HasSignal() bool {
	if strings.TrimSpace(i.Location) != "" {
		return true
	}
	for _, interest := range i.Interests {
		if strings.TrimSpace(interest) != "" {
			return true
		}
	}
	return false
}

// Normalize trims whitespace and drops empty interest tags.
func (i Intent) Normalize() Intent {
	out := Intent{
		Location: strings.TrimSpace(i.Location),
		Budget:   i.Budget,
	}
	for _, interest := range i.Interests {
		interest = strings.TrimSpace(interest)
		if interest != "" {
			out.Interests = append(out.Interests, interest)
		}
	}
	return out
}
