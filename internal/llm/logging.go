package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/dongwha/internal/logger"
	"github.com/abhisek/dongwha/internal/store"
)

// recorder writes one LLM event per call. A failed write is logged and
// never fails the call itself.
type recorder struct {
	provider string
	events   store.EventRepo
	log      *logger.Logger
}

func (r recorder) record(ctx context.Context, data store.LLMRequestEventData, start time.Time, err error) {
	data.Provider = r.provider
	data.Purpose = PurposeFrom(ctx)
	data.LatencyMs = time.Since(start).Milliseconds()
	data.Success = err == nil
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	// The caller's cancellation must not drop the record.
	if werr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), data); werr != nil {
		r.log.Warn("record LLM request", "provider", r.provider, "purpose", data.Purpose, "error", werr)
	}
}

type loggingProvider struct {
	Provider
	recorder
}

// WithLogging stores every Generate call, with its prompt and reply, as
// an LLM request event. provider names the backend in the event.
func WithLogging(p Provider, provider string, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &loggingProvider{Provider: p, recorder: recorder{provider: provider, events: events, log: log}}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.Provider.Generate(ctx, req)

	data := store.LLMRequestEventData{Model: l.ModelID(), RequestBody: transcript(req)}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.ResponseBody = string(resp.Content)
	}
	l.record(ctx, data, start, err)
	return resp, err
}

type loggingEmbedder struct {
	Embedder
	recorder
}

// WithEmbedLogging is WithLogging for an Embedder. Only the vector count
// is stored as the response.
func WithEmbedLogging(e Embedder, provider string, events store.EventRepo, log *logger.Logger) Embedder {
	if log == nil {
		log = logger.Nop()
	}
	return &loggingEmbedder{Embedder: e, recorder: recorder{provider: provider, events: events, log: log}}
}

func (l *loggingEmbedder) Embed(ctx context.Context, req EmbedRequest) (*EmbedResponse, error) {
	start := time.Now()
	resp, err := l.Embedder.Embed(ctx, req)

	data := store.LLMRequestEventData{Model: l.EmbeddingModelID(), RequestBody: strings.Join(req.Texts, "\n")}
	if resp != nil {
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.InputTokens = resp.Usage.InputTokens
		data.ResponseBody = fmt.Sprintf("%d vectors", len(resp.Vectors))
	}
	l.record(ctx, data, start, err)
	return resp, err
}

// transcript renders a request the way `dongwha llm view` prints it.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
