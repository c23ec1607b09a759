package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// eventRepo implements EventRepo with raw SQL over the shared event
// sequence.
type eventRepo struct {
	db  *sql.DB
	seq *sequencer
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	if data.UserID == "" {
		data.UserID = "anonymous"
	}
	return r.seq.insert(ctx, func(tx *sql.Tx, seq int64) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO answer_events
			(sequence, timestamp, user_id, kind, age_group, word, sentence, correct_answer, user_answer, correct, similarity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			seq, time.Now().UTC().UnixMilli(), data.UserID, data.Kind, data.AgeGroup,
			data.Word, data.Sentence, data.CorrectAnswer, data.UserAnswer, data.Correct, data.Similarity,
		)
		if err != nil {
			return fmt.Errorf("save answer event: %w", err)
		}
		return nil
	})
}

func (r *eventRepo) QueryAnswers(ctx context.Context, f AnswerFilter, opts QueryOpts) ([]AnswerEvent, error) {
	where, args := answerWhere(f)
	where, args = appendOpts(where, args, opts)

	q := `SELECT id, sequence, timestamp, user_id, kind, age_group, word, sentence,
		correct_answer, user_answer, correct, similarity
		FROM answer_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.UserID, &e.Kind, &e.AgeGroup,
			&e.Word, &e.Sentence, &e.CorrectAnswer, &e.UserAnswer, &e.Correct, &e.Similarity); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) AnswerTallies(ctx context.Context, f AnswerFilter) ([]AgeTally, error) {
	where, args := answerWhere(f)
	rows, err := r.db.QueryContext(ctx,
		`SELECT age_group, COUNT(*), COALESCE(SUM(correct), 0) FROM answer_events`+where+
			` GROUP BY age_group ORDER BY age_group`, args...)
	if err != nil {
		return nil, fmt.Errorf("tally answers: %w", err)
	}
	defer rows.Close()

	var out []AgeTally
	for rows.Next() {
		var t AgeTally
		if err := rows.Scan(&t.AgeGroup, &t.Total, &t.Correct); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *eventRepo) DistinctUsers(ctx context.Context, f AnswerFilter) (int, error) {
	where, args := answerWhere(f)
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM answer_events`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *eventRepo) ResetAnswers(ctx context.Context, f AnswerFilter) (int64, error) {
	where, args := answerWhere(f)
	res, err := r.db.ExecContext(ctx, `DELETE FROM answer_events`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("reset answers: %w", err)
	}
	return res.RowsAffected()
}

func answerWhere(f AnswerFilter) (string, []any) {
	var conds []string
	var args []any
	if f.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, f.Kind)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// appendOpts adds sequence and time-window conditions to a WHERE clause.
func appendOpts(where string, args []any, opts QueryOpts) (string, []any) {
	var conds []string
	if opts.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	if len(conds) == 0 {
		return where, args
	}
	joined := strings.Join(conds, " AND ")
	if where == "" {
		return " WHERE " + joined, args
	}
	return where + " AND " + joined, args
}
