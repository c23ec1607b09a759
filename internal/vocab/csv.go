package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadCSV reads a vocabulary table. Required columns: word, frequency,
// age_group. Optional: id, pos, length, difficulty_score. Unknown columns
// are ignored.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses vocabulary rows from r.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, req := range []string{"word", "frequency", "age_group"} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("missing required column %q", req)
		}
	}

	var out []Entry
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		e := Entry{Word: get("word"), POS: get("pos"), DifficultyScore: 1.0}
		if e.Frequency, err = atoi(get("frequency")); err != nil {
			return nil, fmt.Errorf("row %d: frequency: %w", row, err)
		}
		if e.AgeGroup, err = atoi(get("age_group")); err != nil {
			return nil, fmt.Errorf("row %d: age_group: %w", row, err)
		}
		if v := get("id"); v != "" {
			if e.ID, err = atoi(v); err != nil {
				return nil, fmt.Errorf("row %d: id: %w", row, err)
			}
		}
		if v := get("length"); v != "" {
			if e.Length, err = atoi(v); err != nil {
				return nil, fmt.Errorf("row %d: length: %w", row, err)
			}
		}
		if v := get("difficulty_score"); v != "" {
			if e.DifficultyScore, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("row %d: difficulty_score: %w", row, err)
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// atoi accepts integral floats such as "12.0" as written by spreadsheet
// exports.
func atoi(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// WriteCSV writes entries with the standard column set.
func WriteCSV(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"word", "pos", "length", "frequency", "age_group", "difficulty_score"})
	for _, e := range entries {
		w.Write([]string{
			e.Word,
			e.POS,
			strconv.Itoa(e.Length),
			strconv.Itoa(e.Frequency),
			strconv.Itoa(e.AgeGroup),
			strconv.FormatFloat(e.DifficultyScore, 'f', -1, 64),
		})
	}
	w.Flush()
	return w.Error()
}
