package llm

import (
	"regexp"
	"strings"
)

// ModelCost is USD per million tokens.
type ModelCost struct {
	Input  float64
	Output float64
}

func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.Input + float64(outputTokens)*c.Output) / 1e6
}

var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":       {1, 5},
	"claude-sonnet-4":        {3, 15},
	"gpt-4o":                 {2.5, 10},
	"gpt-4o-mini":            {0.15, 0.6},
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-2.0-pro":         {1.25, 10},
	"gemini-2.5-flash":       {0.3, 2.5},
	"text-embedding-3-small": {0.02, 0},
	"text-embedding-3-large": {0.13, 0},
	"text-embedding-004":     {0, 0},
}

// dated snapshot suffixes: -20250514, -2024-07-18, -exp, -latest
var snapshotSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2}|exp|latest)$`)

// LookupCost prices a model ID as logged. OpenRouter vendor prefixes and
// snapshot suffixes are dropped before the lookup.
func LookupCost(model string) (ModelCost, bool) {
	id := model
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	for {
		if c, ok := modelCosts[id]; ok {
			return c, true
		}
		trimmed := snapshotSuffix.ReplaceAllString(id, "")
		if trimmed == id {
			return ModelCost{}, false
		}
		id = trimmed
	}
}
