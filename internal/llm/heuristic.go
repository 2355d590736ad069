package llm

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/voyageai/recommender/api/internal/entity"
)

var (
	stopwordExpr    = regexp.MustCompile(`(?i)\b(please|show|me|find|some|good|best|top|nice|great|want|looking|i|we|need|any|recommend|suggest)\b`)
	locationPattern = regexp.MustCompile(`(?i)\b(?:in|near|around)\s+([a-zA-Z][a-zA-Z\s]*)`)
	budgetPattern   = regexp.MustCompile(`(?i)(?:under|below|max|budget(?:\s+of)?)\s*\$?\s*(\d+(?:\.\d+)?)|\$\s*(\d+(?:\.\d+)?)`)
)

// connectives mark the end of a captured location phrase.
var connectives = map[string]bool{
	"with": true, "that": true, "under": true, "for": true,
	"and": true, "where": true, "which": true, "on": true,
}

// HeuristicExtractor interprets queries with regular expressions. It serves as
// the extractor when no model API key is configured.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates a rule-based intent parser.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Extract converts a query into a structured intent without a network call.
func (s *HeuristicExtractor) Extract(_ context.Context, query string) (entity.Intent, error) {
	text := strings.TrimSpace(query)
	if text == "" {
		return entity.Intent{}, &ExtractionError{Reason: "empty query"}
	}

	intent := entity.Intent{}

	if m := budgetPattern.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			intent.Budget = &v
		}
		text = strings.Replace(text, m[0], " ", 1)
	}

	if m := locationPattern.FindStringSubmatch(text); len(m) > 1 {
		intent.Location = titleCase(trimAtConnective(m[1]))
		if idx := strings.Index(strings.ToLower(text), strings.ToLower(m[0])); idx >= 0 {
			text = text[:idx] + " " + text[idx+len(m[0]):]
		}
	}

	intent.Interests = extractInterests(text)

	return intent.Normalize(), nil
}

func extractInterests(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), " and ", ",")
	seen := map[string]bool{}
	var interests []string
	for _, part := range strings.Split(text, ",") {
		part = stopwordExpr.ReplaceAllString(part, " ")
		part = strings.Join(strings.Fields(strings.Trim(part, " .,!?")), " ")
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		interests = append(interests, part)
	}
	return interests
}

func trimAtConnective(raw string) string {
	var kept []string
	for _, field := range strings.Fields(raw) {
		if connectives[strings.ToLower(field)] {
			break
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}

func titleCase(value string) string {
	parts := strings.Fields(strings.TrimSpace(value))
	for i, p := range parts {
		lower := strings.ToLower(p)
		if len(lower) == 0 {
			continue
		}
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}

var _ Extractor = (*HeuristicExtractor)(nil)
