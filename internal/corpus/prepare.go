package corpus

import (
	"slices"
	"strings"
)

// DefaultPercentiles are the word-count percentiles that split each
// difficulty bucket into specific ages. Buckets not listed are split
// evenly.
var DefaultPercentiles = map[string][]float64{
	"4_7":   {20, 50, 75},
	"8_10":  {35, 70},
	"11_13": {40, 80},
}

// ComputeThresholds derives per-bucket word-count thresholds from the
// records' word-count distribution.
func ComputeThresholds(records []SentenceRecord, percentiles map[string][]float64) map[string][]int {
	counts := make(map[string][]int)
	for _, r := range records {
		if r.Difficulty == "" {
			continue
		}
		counts[r.Difficulty] = append(counts[r.Difficulty], r.WordCount)
	}

	out := make(map[string][]int, len(counts))
	for label, wc := range counts {
		b, err := ParseBucket(label)
		if err != nil {
			continue
		}
		slices.Sort(wc)

		ps, ok := percentiles[label]
		if !ok {
			n := len(b.Ages())
			for i := 1; i < n; i++ {
				ps = append(ps, float64(i)*100/float64(n))
			}
		}

		th := make([]int, 0, len(ps))
		for _, p := range ps {
			idx := int(float64(len(wc)) * p / 100)
			if idx >= len(wc) {
				idx = len(wc) - 1
			}
			th = append(th, wc[idx])
		}
		out[label] = th
	}
	return out
}

// AssignAge picks the specific age within b for a record with wordCount
// words: the first age whose threshold exceeds wordCount, else the oldest.
// Without thresholds the bucket's middle age is used.
func AssignAge(b Bucket, wordCount int, thresholds []int) int {
	ages := b.Ages()
	if len(thresholds) == 0 {
		return ages[len(ages)/2]
	}
	for i, t := range thresholds {
		if i >= len(ages) {
			break
		}
		if wordCount < t {
			return ages[i]
		}
	}
	return ages[len(ages)-1]
}

// AssignAges returns copies of records with Age set from thresholds.
// Records whose difficulty label does not parse keep age 0 and are ignored
// by the Store.
func AssignAges(records []SentenceRecord, thresholds map[string][]int) []SentenceRecord {
	out := make([]SentenceRecord, len(records))
	for i, r := range records {
		if r.WordCount == 0 {
			r.WordCount = len(Words(r.Text))
		}
		if b, err := ParseBucket(r.Difficulty); err == nil {
			r.Age = AssignAge(b, r.WordCount, thresholds[r.Difficulty])
		}
		out[i] = r
	}
	return out
}

// FilterWordCount keeps records with between lo and hi words inclusive,
// trimming their text.
func FilterWordCount(records []SentenceRecord, lo, hi int) []SentenceRecord {
	var out []SentenceRecord
	for _, r := range records {
		if r.WordCount < lo || r.WordCount > hi {
			continue
		}
		r.Text = strings.TrimSpace(r.Text)
		if r.Text == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
