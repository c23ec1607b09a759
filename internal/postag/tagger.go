// Package postag tags Korean text with coarse part-of-speech labels used by
// the comprehension role extractor.
package postag

import "context"

// Tag is a coarse part-of-speech label.
type Tag string

const (
	TagNoun        Tag = "Noun"
	TagVerb        Tag = "Verb"
	TagAdjective   Tag = "Adjective"
	TagJosa        Tag = "Josa"
	TagPunctuation Tag = "Punctuation"
	TagForeign     Tag = "Foreign"
	TagOther       Tag = "Other"
)

// Tags lists every tag a Tagger may emit.
var Tags = []Tag{TagNoun, TagVerb, TagAdjective, TagJosa, TagPunctuation, TagForeign, TagOther}

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool {
	for _, k := range Tags {
		if t == k {
			return true
		}
	}
	return false
}

// Token is one tagged morpheme.
type Token struct {
	Surface string `json:"surface"`
	Tag     Tag    `json:"tag"`
}

// Tagger splits text into tagged tokens, preserving order.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Token, error)
}
