package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"answer_events", "llm_request_events", "event_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestAppendAndQueryAnswers(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{UserID: "kim", Kind: KindQuiz, AgeGroup: 5, Word: "나무", CorrectAnswer: "나무", UserAnswer: "나무", Correct: true},
		{UserID: "kim", Kind: KindQuiz, AgeGroup: 5, Word: "하늘", CorrectAnswer: "하늘", UserAnswer: "바다", Correct: false},
		{UserID: "kim", Kind: KindQuiz, AgeGroup: 7, Word: "용기", CorrectAnswer: "용기", UserAnswer: "용기", Correct: true},
		{UserID: "", Kind: KindPuzzle, AgeGroup: 6, Correct: true, Similarity: 0.93},
	}
	for _, a := range answers {
		if err := repo.AppendAnswer(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryAnswers(ctx, AnswerFilter{UserID: "kim"}, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Word != "용기" || got[0].Sequence <= got[1].Sequence {
		t.Errorf("expected most recent first, got %+v", got[0])
	}

	limited, err := repo.QueryAnswers(ctx, AnswerFilter{}, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}

	puzzle, err := repo.QueryAnswers(ctx, AnswerFilter{Kind: KindPuzzle}, QueryOpts{})
	if err != nil {
		t.Fatalf("query puzzle: %v", err)
	}
	if len(puzzle) != 1 || puzzle[0].UserID != "anonymous" || puzzle[0].Similarity != 0.93 {
		t.Errorf("puzzle answers = %+v", puzzle)
	}
}

func TestAnswerTalliesAndUsers(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, a := range []AnswerEventData{
		{UserID: "a", Kind: KindQuiz, AgeGroup: 5, Correct: true},
		{UserID: "a", Kind: KindQuiz, AgeGroup: 5, Correct: false},
		{UserID: "b", Kind: KindQuiz, AgeGroup: 4, Correct: true},
	} {
		if err := repo.AppendAnswer(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	tallies, err := repo.AnswerTallies(ctx, AnswerFilter{Kind: KindQuiz})
	if err != nil {
		t.Fatalf("tallies: %v", err)
	}
	want := []AgeTally{{AgeGroup: 4, Total: 1, Correct: 1}, {AgeGroup: 5, Total: 2, Correct: 1}}
	if len(tallies) != len(want) {
		t.Fatalf("tallies = %+v, want %+v", tallies, want)
	}
	for i := range want {
		if tallies[i] != want[i] {
			t.Errorf("tallies[%d] = %+v, want %+v", i, tallies[i], want[i])
		}
	}

	n, err := repo.DistinctUsers(ctx, AnswerFilter{})
	if err != nil {
		t.Fatalf("distinct users: %v", err)
	}
	if n != 2 {
		t.Errorf("distinct users = %d, want 2", n)
	}

	removed, err := repo.ResetAnswers(ctx, AnswerFilter{})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	tallies, _ = repo.AnswerTallies(ctx, AnswerFilter{})
	if len(tallies) != 0 {
		t.Errorf("tallies after reset = %+v", tallies)
	}
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AppendAnswer(ctx, AnswerEventData{UserID: "u", Kind: KindQuiz, AgeGroup: 4 + i%7})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryAnswers(ctx, AnswerFilter{}, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != n {
		t.Fatalf("stored %d answers, want %d", len(got), n)
	}
	seen := map[int64]bool{}
	for _, e := range got {
		if seen[e.Sequence] {
			t.Errorf("duplicate sequence %d", e.Sequence)
		}
		seen[e.Sequence] = true
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "text-embedding-3-small", Purpose: "embedding", InputTokens: 12, LatencyMs: 40, Success: true},
		{Provider: "openai", Model: "text-embedding-3-small", Purpose: "embedding", InputTokens: 8, LatencyMs: 60, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "pos-tagging", InputTokens: 100, OutputTokens: 50, Success: false, ErrorMessage: "boom", RequestBody: "[user]\nhi"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].Purpose != "pos-tagging" || list[0].Success {
		t.Errorf("most recent = %+v", list[0])
	}

	e, err := repo.GetLLMEvent(ctx, list[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.RequestBody != "[user]\nhi" || e.ErrorMessage != "boom" {
		t.Errorf("get = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "embedding" || byPurpose[0].Calls != 2 ||
		byPurpose[0].InputTokens != 20 || byPurpose[0].AvgLatencyMs != 50 {
		t.Errorf("by purpose = %+v", byPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Errorf("by model = %+v", byModel)
	}
}
