package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete answer history",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		kind, _ := cmd.Flags().GetString("kind")
		yes, _ := cmd.Flags().GetBool("yes")
		if user == "" && !yes {
			return fmt.Errorf("this deletes every learner's history; pass --yes to confirm or --user to limit it")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.EventRepo().ResetAnswers(cmd.Context(), store.AnswerFilter{UserID: user, Kind: kind})
		if err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		fmt.Printf("Deleted %d answers.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("kind", "", "Only delete one kind (quiz, puzzle, vocabulary, comprehension)")
	resetCmd.Flags().Bool("yes", false, "Confirm deleting every learner's history")
}
