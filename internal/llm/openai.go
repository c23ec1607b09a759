package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider implements Provider and Embedder on the chat completion
// and embeddings endpoints. Any OpenAI-compatible server works through
// BaseURL, including self-hosted sentence encoders.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	embedModel string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return newOpenAIProviderRaw(cfg, nil)
}

// newOpenAIProviderRaw builds the client without checking the key. tune may
// adjust the client config first.
func newOpenAIProviderRaw(cfg OpenAIConfig, tune func(*openai.ClientConfig)) (*OpenAIProvider, error) {
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	if tune != nil {
		tune(&cc)
	}
	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(cc),
		model:      resolveModel(cfg.Model, openaiModels),
		embedModel: cfg.EmbeddingModel,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in OpenAI response")}
	}
	choice := resp.Choices[0]

	content := json.RawMessage(choice.Message.Content)
	stop := mapOpenAIStopReason(choice.FinishReason)
	if err := truncated(req, stop, content); err != nil {
		return nil, err
	}
	if content, err = validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: stop,
	}, nil
}

func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            buildOpenAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema == nil {
		return chat, nil
	}

	def, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return chat, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
	}
	chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   req.Schema.Name,
			Schema: json.RawMessage(def),
			Strict: true,
		},
	}
	return chat, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func (p *OpenAIProvider) Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error) {
	out := &EmbedResponse{Model: p.embedModel}
	if len(req.Texts) == 0 {
		return out, nil
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: req.Texts,
		Model: openai.EmbeddingModel(p.embedModel),
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Data) != len(req.Texts) {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("expected %d embeddings, got %d", len(req.Texts), len(resp.Data))}
	}

	// Servers may return the rows out of order; Index is authoritative.
	out.Vectors = make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out.Vectors) {
			return nil, &ErrInvalidResponse{Err: fmt.Errorf("embedding index %d out of range", d.Index)}
		}
		out.Vectors[d.Index] = d.Embedding
	}
	if resp.Model != "" {
		out.Model = string(resp.Model)
	}
	out.Usage = Usage{InputTokens: resp.Usage.PromptTokens, TotalTokens: resp.Usage.TotalTokens}
	return out, nil
}

func (p *OpenAIProvider) EmbeddingModelID() string {
	return p.embedModel
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return msgs
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	if reason == openai.FinishReasonLength {
		return "max_tokens"
	}
	return "end"
}

func mapOpenAIError(err error) error {
	var (
		apiErr *openai.APIError
		reqErr *openai.RequestError
	)
	switch {
	case errors.As(err, &apiErr):
		return fromStatus(apiErr.HTTPStatusCode, err)
	case errors.As(err, &reqErr):
		return fromStatus(reqErr.HTTPStatusCode, err)
	}
	return fromStatus(0, err)
}
