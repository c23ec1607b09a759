package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dataset is the on-disk layout written by the prepare step.
type Dataset struct {
	Train      []SentenceRecord `json:"train"`
	Validation []SentenceRecord `json:"validation,omitempty"`
	Thresholds map[string][]int `json:"thresholds,omitempty"`
}

// LoadFile reads a corpus file. Three layouts are accepted: a Dataset
// object, a bare JSON array of records, or JSON Lines (".jsonl").
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		recs, err := decodeLines(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &Dataset{Train: recs}, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []SentenceRecord
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &Dataset{Train: recs}, nil
	}

	var ds Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &ds, nil
}

func decodeLines(raw []byte) ([]SentenceRecord, error) {
	var out []SentenceRecord
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var r SentenceRecord
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, r)
	}
	return out, sc.Err()
}

// WriteFile writes ds as indented JSON.
func WriteFile(path string, ds *Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	b, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}
