package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/voyageai/recommender/api/internal/entity"
)

const defaultTemperature = 0.2

const intentPromptTemplate = `You are a travel assistant. Extract the search intent from the user's travel query.
Respond with ONLY a JSON object, no prose, in this exact shape:
{"location": "<destination city or area, empty string if none>", "interests": ["<venue type>", ...], "budget": <number or null>}

Interests are short venue categories such as "restaurants", "hotels", "museums" or "tourist attractions".
Budget is the numeric spending ceiling if the user states one, otherwise null.

Query: %q`

// TextGenerator produces a completion for a prompt. It exists so tests can
// substitute the hosted model.
type TextGenerator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeminiExtractor asks a Gemini model to turn a query into an Intent.
type GeminiExtractor struct {
	gen   TextGenerator
	model string
}

// NewGeminiExtractor builds an extractor backed by the hosted Gemini API.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return NewGeminiExtractorWithGenerator(&genaiGenerator{client: client}, model), nil
}

// NewGeminiExtractorWithGenerator allows injecting a custom generator (useful for tests).
func NewGeminiExtractorWithGenerator(gen TextGenerator, model string) *GeminiExtractor {
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiExtractor{gen: gen, model: model}
}

// Extract sends the query to the model and parses the JSON completion.
func (e *GeminiExtractor) Extract(ctx context.Context, query string) (entity.Intent, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entity.Intent{}, &ExtractionError{Reason: "empty query"}
	}

	prompt := fmt.Sprintf(intentPromptTemplate, query)
	raw, err := e.gen.Generate(ctx, e.model, prompt)
	if err != nil {
		return entity.Intent{}, &ExtractionError{Reason: "model call failed", Err: err}
	}

	return parseIntentJSON(raw)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](defaultTemperature),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

var _ Extractor = (*GeminiExtractor)(nil)
