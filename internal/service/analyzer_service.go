package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"checkwise/internal/ai"
	"checkwise/internal/errors"
	"checkwise/internal/model"
)

const (
	defaultRecommendation = "Please review the product details before purchasing."
	defaultAnalysis       = "Product analysis is not available."
)

const analyzerSystemPrompt = "You are an expert in analyzing products and customer reviews. " +
	"You provide objective, helpful assessments. Respond with JSON only."

// AnalysisInput carries the fields embedded into the analysis prompt.
type AnalysisInput struct {
	ProductName        string
	ProductPrice       string
	Platform           string
	ReviewsSummary     string
	ProductDescription string
}

// AnalysisResult is the normalized outcome of one analysis run.
type AnalysisResult struct {
	TrustScore     int
	TrustLevel     model.TrustLevel
	PositivePoints []string
	NegativePoints []string
	Recommendation string
	AIAnalysis     string
	Alternatives   []model.Alternative
}

// TrustAnalyzer turns product data into a normalized trust analysis.
type TrustAnalyzer interface {
	Analyze(ctx context.Context, input AnalysisInput) (*AnalysisResult, error)
}

type trustAnalyzer struct {
	ai ai.Client
}

// NewTrustAnalyzer creates an analyzer backed by the given model client.
func NewTrustAnalyzer(aiClient ai.Client) TrustAnalyzer {
	return &trustAnalyzer{ai: aiClient}
}

// Analyze calls the model service once and normalizes its JSON reply. A failed
// transport call is fatal; a reply that is not valid JSON is not: it is
// treated as an empty object and every field falls back to its default.
func (s *trustAnalyzer) Analyze(ctx context.Context, input AnalysisInput) (*AnalysisResult, error) {
	raw, err := s.ai.GenerateJSON(ctx, analyzerSystemPrompt, buildAnalysisPrompt(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrAnalysisService, err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		parsed = map[string]interface{}{}
	}

	score := normalizeScore(parsed["trustScore"])

	level := model.TrustLevelForScore(score)
	if tag, ok := parsed["trustLevel"].(string); ok && model.ValidTrustLevel(tag) {
		level = model.TrustLevel(tag)
	}

	result := &AnalysisResult{
		TrustScore:     score,
		TrustLevel:     level,
		PositivePoints: stringSlice(parsed["positivePoints"]),
		NegativePoints: stringSlice(parsed["negativePoints"]),
		Recommendation: stringOr(parsed["recommendation"], defaultRecommendation),
		AIAnalysis:     stringOr(parsed["aiAnalysis"], defaultAnalysis),
		Alternatives:   []model.Alternative{},
	}

	if score < 80 {
		result.Alternatives = synthesizeAlternatives(input)
	}

	return result, nil
}

func buildAnalysisPrompt(input AnalysisInput) string {
	var b strings.Builder
	b.WriteString("Analyze the following e-commerce product listing and give a detailed trust report.\n\n")
	b.WriteString("Product: " + input.ProductName + "\n")
	if input.ProductPrice != "" {
		b.WriteString("Price: " + input.ProductPrice + "\n")
	} else {
		b.WriteString("Price: not available\n")
	}
	b.WriteString("Platform: " + input.Platform + "\n")
	if input.ProductDescription != "" {
		b.WriteString("Description: " + input.ProductDescription + "\n")
	}
	if input.ReviewsSummary != "" {
		b.WriteString("Reviews summary: " + input.ReviewsSummary + "\n")
	}
	b.WriteString(`
Respond with a JSON object in exactly this format:
{
  "trustScore": an integer from 0 to 100,
  "trustLevel": "trusted" or "warning" or "untrusted",
  "positivePoints": [a list of 3-5 positive points],
  "negativePoints": [a list of 2-4 negative points or warnings],
  "recommendation": "a clear recommendation for the buyer",
  "aiAnalysis": "a detailed analysis of the product"
}

Notes:
- trustScore must be an integer between 0 and 100
- trustLevel: "trusted" if the score is >= 80, "warning" if >= 50, "untrusted" if < 50
- be objective and helpful
- focus on the reviews and on credibility`)
	return b.String()
}

// normalizeScore rounds and clamps the parsed score to [0,100]. A missing or
// non-numeric score behaves as the low bound, which yields "untrusted".
func normalizeScore(v interface{}) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	f = math.Round(f)
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(f)
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}
