package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/corpus"
	"github.com/abhisek/dongwha/internal/postag"
	"github.com/abhisek/dongwha/internal/vocab"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build the corpus and vocabulary artifacts",
}

var prepareCorpusCmd = &cobra.Command{
	Use:   "corpus <in> <out>",
	Short: "Assign ages to a raw corpus by word-count percentiles",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minWords, _ := cmd.Flags().GetInt("min-words")
		maxWords, _ := cmd.Flags().GetInt("max-words")

		ds, err := corpus.LoadFile(args[0])
		if err != nil {
			return err
		}

		train := corpus.FilterWordCount(withWordCounts(ds.Train), minWords, maxWords)
		thresholds := corpus.ComputeThresholds(train, corpus.DefaultPercentiles)
		out := &corpus.Dataset{
			Train:      corpus.AssignAges(train, thresholds),
			Validation: corpus.AssignAges(corpus.FilterWordCount(withWordCounts(ds.Validation), minWords, maxWords), thresholds),
			Thresholds: thresholds,
		}
		if err := corpus.WriteFile(args[1], out); err != nil {
			return err
		}

		byAge := make(map[int]int)
		for _, r := range out.Train {
			byAge[r.Age]++
		}
		fmt.Printf("Wrote %d training and %d validation records to %s\n", len(out.Train), len(out.Validation), args[1])
		for age := corpus.MinAge; age <= corpus.MaxAge; age++ {
			if byAge[age] > 0 {
				fmt.Printf("  %2d세  %d\n", age, byAge[age])
			}
		}
		return nil
	},
}

func withWordCounts(records []corpus.SentenceRecord) []corpus.SentenceRecord {
	out := make([]corpus.SentenceRecord, len(records))
	for i, r := range records {
		if r.WordCount == 0 {
			r.WordCount = len(corpus.Words(r.Text))
		}
		out[i] = r
	}
	return out
}

var prepareVocabCmd = &cobra.Command{
	Use:   "vocab <corpus> <out.csv>",
	Short: "Build the age-graded vocabulary table from corpus word frequencies",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sentencesOut, _ := cmd.Flags().GetString("sentences")
		perWord, _ := cmd.Flags().GetInt("per-word")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ds, err := corpus.LoadFile(args[0])
		if err != nil {
			return err
		}
		texts := make([]string, len(ds.Train))
		for i, r := range ds.Train {
			texts[i] = r.Text
		}

		tagger := postag.NewRuleTagger(cfg.Comprehension.Rules.Lexicon()...)
		entries := cfg.Classifier.Build(texts, func(word string) string {
			return posOf(cmd.Context(), tagger, word)
		})
		if err := vocab.WriteCSV(args[1], entries); err != nil {
			return err
		}
		fmt.Printf("Wrote %d words to %s\n", len(entries), args[1])

		if sentencesOut == "" {
			return nil
		}
		var sentences []string
		for _, t := range texts {
			sentences = append(sentences, corpus.SplitSentences(t)...)
		}
		words := make([]string, len(entries))
		for i, e := range entries {
			words[i] = e.Word
		}
		idx := vocab.BuildSentenceIndex(sentences, words, perWord)
		if err := idx.WriteFile(sentencesOut); err != nil {
			return err
		}
		fmt.Printf("Wrote %d sentences for %d words to %s\n", idx.Len(), len(idx), sentencesOut)
		return nil
	},
}

// posOf tags a lone word and keeps content-word tags only.
func posOf(ctx context.Context, t postag.Tagger, word string) string {
	toks, err := t.Tag(ctx, word)
	if err != nil || len(toks) == 0 {
		return ""
	}
	switch tag := toks[0].Tag; tag {
	case postag.TagNoun, postag.TagVerb, postag.TagAdjective:
		return string(tag)
	}
	return ""
}

func init() {
	prepareCorpusCmd.Flags().Int("min-words", 2, "Drop records with fewer words")
	prepareCorpusCmd.Flags().Int("max-words", 200, "Drop records with more words")
	prepareVocabCmd.Flags().String("sentences", "", "Also write the word to sentence index JSON here")
	prepareVocabCmd.Flags().Int("per-word", 20, "Sentences kept per word")

	prepareCmd.AddCommand(prepareCorpusCmd)
	prepareCmd.AddCommand(prepareVocabCmd)
}
