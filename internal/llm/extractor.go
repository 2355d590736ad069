package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voyageai/recommender/api/internal/entity"
)

// Extractor derives a structured travel intent from a free-text query.
type Extractor interface {
	Extract(ctx context.Context, query string) (entity.Intent, error)
}

// ExtractionError reports a failed or unusable model response.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("intent extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("intent extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// intentPayload matches the JSON object the model is instructed to return.
type intentPayload struct {
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
	Budget    *float64 `json:"budget"`
}

// parseIntentJSON decodes a model completion into an Intent. Markdown code
// fences around the object are tolerated; anything else unparsable is an
// ExtractionError.
func parseIntentJSON(raw string) (entity.Intent, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return entity.Intent{}, &ExtractionError{Reason: "empty model response"}
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return entity.Intent{}, &ExtractionError{Reason: "unparsable model response", Err: err}
	}

	intent := entity.Intent{
		Location:  payload.Location,
		Interests: payload.Interests,
	}
	if payload.Budget != nil && *payload.Budget > 0 {
		intent.Budget = payload.Budget
	}
	return intent.Normalize(), nil
}

func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
