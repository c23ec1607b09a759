package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/puzzle"
)

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Print a sentence puzzle as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetInt("age")
		diffVal, _ := cmd.Flags().GetString("difficulty")
		d, err := puzzle.ParseDifficulty(diffVal)
		if err != nil {
			return err
		}

		a, err := loadApp(cmd, nil)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.Puzzles == nil {
			return errors.New("corpus not configured (set DONGWHA_CORPUS)")
		}

		p, err := a.Puzzles.Generate(cmd.Context(), puzzle.GenerateInput{Age: age, Difficulty: d})
		if err != nil {
			return err
		}
		return printJSON(p)
	},
}

var puzzleVerifyCmd = &cobra.Command{
	Use:   "verify <original> <answer>",
	Short: "Check a reassembled sentence",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, _ := cmd.Flags().GetFloat64("threshold")

		a, err := loadApp(cmd, nil)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.Puzzles == nil {
			return errors.New("corpus not configured (set DONGWHA_CORPUS)")
		}

		v, err := a.Puzzles.Verify(cmd.Context(), args[0], args[1], threshold)
		if err != nil {
			return err
		}
		return printJSON(v)
	},
}

var puzzleHintCmd = &cobra.Command{
	Use:   "hint <original> [current]",
	Short: "Show hints for a partial answer",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		current := ""
		if len(args) == 2 {
			current = args[1]
		}
		return printJSON(puzzle.GetHint(args[0], current))
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func init() {
	puzzleCmd.Flags().Int("age", 0, "Learner age 4-13 (0 picks one at random)")
	puzzleCmd.Flags().String("difficulty", "medium", "Difficulty: easy, medium or hard")
	puzzleVerifyCmd.Flags().Float64("threshold", 0, "Similarity needed to pass (0 uses the configured default)")

	puzzleCmd.AddCommand(puzzleVerifyCmd)
	puzzleCmd.AddCommand(puzzleHintCmd)
}
