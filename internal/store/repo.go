package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Answer kinds recorded in the history.
const (
	KindQuiz          = "quiz"
	KindPuzzle        = "puzzle"
	KindVocabulary    = "vocabulary"
	KindComprehension = "comprehension"
)

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	UserID        string
	Kind          string
	AgeGroup      int
	Word          string
	Sentence      string
	CorrectAnswer string
	UserAnswer    string
	Correct       bool
	Similarity    float64
}

// AnswerEvent is a stored answer with its ordering metadata.
type AnswerEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// AnswerFilter narrows answer queries. Empty fields match everything.
type AnswerFilter struct {
	UserID string
	Kind   string
}

// AgeTally counts answers for one age group.
type AgeTally struct {
	AgeGroup int
	Total    int
	Correct  int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records a submitted answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// QueryAnswers returns answers matching f, most recent first.
	QueryAnswers(ctx context.Context, f AnswerFilter, opts QueryOpts) ([]AnswerEvent, error)

	// AnswerTallies returns per-age totals for answers matching f,
	// ascending by age group.
	AnswerTallies(ctx context.Context, f AnswerFilter) ([]AgeTally, error)

	// DistinctUsers counts users with at least one answer matching f.
	DistinctUsers(ctx context.Context, f AnswerFilter) (int, error)

	// ResetAnswers deletes answers matching f and returns how many were
	// removed.
	ResetAnswers(ctx context.Context, f AnswerFilter) (int64, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
