package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  ModelCost
		ok    bool
	}{
		{"gpt-4o-mini", ModelCost{0.15, 0.6}, true},
		{"gpt-4o-mini-2024-07-18", ModelCost{0.15, 0.6}, true},
		{"claude-sonnet-4-20250514", ModelCost{3, 15}, true},
		{"claude-haiku-4-5-20251001", ModelCost{1, 5}, true},
		{"google/gemini-2.0-flash-exp", ModelCost{0.1, 0.4}, true},
		{"qwen/qwen-2.5-7b", ModelCost{}, false},
	}
	for _, tt := range tests {
		got, ok := LookupCost(tt.model)
		assert.Equal(t, tt.ok, ok, tt.model)
		assert.Equal(t, tt.want, got, tt.model)
	}
}

func TestModelCost(t *testing.T) {
	c := ModelCost{Input: 3, Output: 15}
	assert.InDelta(t, 0.0105, c.Cost(1000, 500), 1e-9)
}
