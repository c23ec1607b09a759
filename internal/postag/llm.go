package postag

import (
	"context"
	"fmt"

	"github.com/abhisek/dongwha/internal/llm"
)

// TokensSchema is the structured output the LLM tagger asks for.
var TokensSchema = &llm.Schema{
	Name:        "pos-tags",
	Description: "Korean morphemes in order with a coarse part-of-speech tag",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tokens": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"surface": map[string]any{
							"type":        "string",
							"description": "The morpheme exactly as it appears in the text",
						},
						"tag": map[string]any{
							"type": "string",
							"enum": []any{"Noun", "Verb", "Adjective", "Josa", "Punctuation", "Foreign", "Other"},
						},
					},
					"required":             []any{"surface", "tag"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tokens"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a Korean morphological analyser for children's stories.
Split the sentence into morphemes in reading order. Separate particles (은, 는, 이, 가, 을, 를, 에, 에서, 으로 ...) from the nouns they attach to and tag them Josa.
Keep each predicate (verb or adjective with its endings) as a single token in its surface form.
Punctuation marks are separate tokens.`

// LLMConfig controls the LLM tagger.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns the recommended settings.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{MaxTokens: 1024, Temperature: 0}
}

// LLMTagger tags text with a language model using structured output.
type LLMTagger struct {
	provider llm.Provider
	config   LLMConfig
}

// NewLLMTagger creates a tagger backed by provider.
func NewLLMTagger(provider llm.Provider, cfg LLMConfig) *LLMTagger {
	return &LLMTagger{provider: provider, config: cfg}
}

type tagOutput struct {
	Tokens []Token `json:"tokens"`
}

func (t *LLMTagger) Tag(ctx context.Context, text string) ([]Token, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTagging)

	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		Schema:      TokensSchema,
		MaxTokens:   t.config.MaxTokens,
		Temperature: t.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM tagging failed: %w", err)
	}

	var out tagOutput
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	for i, tok := range out.Tokens {
		if !tok.Tag.Valid() {
			return nil, fmt.Errorf("token %d %q: unknown tag %q", i, tok.Surface, tok.Tag)
		}
	}
	return out.Tokens, nil
}

// Fallback tries primary first and uses secondary when it fails.
type Fallback struct {
	Primary   Tagger
	Secondary Tagger
}

func (f Fallback) Tag(ctx context.Context, text string) ([]Token, error) {
	toks, err := f.Primary.Tag(ctx, text)
	if err == nil {
		return toks, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	return f.Secondary.Tag(ctx, text)
}
