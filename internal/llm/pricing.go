package llm

import "strings"

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns pricing for a model id, or nil if unknown. Dated
// snapshots ("claude-haiku-4-5-20251001") and gateway-namespaced ids
// ("google/gemini-2.5-flash") resolve to their family entry by longest
// prefix.
func LookupCost(modelID string) *ModelCost {
	id := modelID
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}

	var (
		best    string
		matched ModelCost
	)
	for prefix, c := range modelCosts {
		if strings.HasPrefix(id, prefix) && len(prefix) > len(best) {
			best, matched = prefix, c
		}
	}
	if best == "" {
		return nil
	}
	return &matched
}

// modelCosts lists model families by id prefix. Last updated: 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-7-sonnet": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4-6":   {5, 25},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o3-mini":      {1.1, 4.4},
	"o4-mini":      {1.1, 4.4},

	// Google
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash":        {0.5, 3},
	"gemini-3-pro":          {2, 12},
}
