package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("user", "", "Learner ID for history (default $USER)")
}

func learnerID(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

// runPlay loads the services and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	a, err := loadApp(cmd, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := tui.Options{
		Events:            a.Store.EventRepo(),
		UserID:            learnerID(cmd),
		Game:              a.Config.Game,
		Threshold:         a.Config.Puzzle.Threshold,
		VocabularyTest:    a.Config.Vocabulary.Adaptive,
		ComprehensionTest: a.Config.Comprehension.Adaptive,
	}
	// Leave nil services as nil interfaces so their menu entries disable.
	if a.Puzzles != nil {
		opts.Puzzles = a.Puzzles
	}
	if a.Vocabulary != nil {
		opts.Vocabulary = a.Vocabulary.AdaptiveTest
	}
	if a.Comprehension != nil {
		opts.Comprehension = a.Comprehension.AdaptiveTest
	}
	if a.Corpus == nil {
		fmt.Fprintln(os.Stderr, "Corpus not configured (set DONGWHA_CORPUS).")
		fmt.Fprintln(os.Stderr, "Puzzles and reading tests will be unavailable.")
	}

	return tui.Run(opts)
}
