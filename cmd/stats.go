package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer statistics",
	Long: `Show answer statistics for one learner (--user) or, with --all, for
everyone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		kind, _ := cmd.Flags().GetString("kind")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		// Stats only read the history, so no vocabulary is loaded.
		svc := quiz.NewService(nil, nil, nil, s.EventRepo(), quiz.DefaultConfig())
		ctx := cmd.Context()

		if all {
			st, err := svc.AllStats(ctx)
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}
			fmt.Printf("Submissions:  %d\n", st.TotalSubmissions)
			fmt.Printf("Correct:      %d\n", st.CorrectAnswers)
			fmt.Printf("Accuracy:     %.1f%%\n", st.OverallAccuracy)
			fmt.Printf("Learners:     %d\n", st.UniqueUsers)
			return nil
		}

		user := learnerID(cmd)
		st, err := svc.UserStats(ctx, user, kind)
		if errors.Is(err, quiz.ErrNoHistory) {
			fmt.Printf("No answers recorded for %s yet.\n", user)
			return nil
		}
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		fmt.Printf("%s: %d/%d correct (%.1f%%)\n\n", user, st.CorrectCount, st.TotalQuestions, st.Accuracy)
		fmt.Printf("%-6s  %6s  %8s  %9s\n", "Age", "Total", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 36))

		ages := make([]int, 0, len(st.ByAgeGroup))
		for k := range st.ByAgeGroup {
			if a, err := strconv.Atoi(k); err == nil {
				ages = append(ages, a)
			}
		}
		slices.Sort(ages)
		for _, a := range ages {
			row := st.ByAgeGroup[strconv.Itoa(a)]
			fmt.Printf("%-6s  %6d  %8d  %8.1f%%\n", fmt.Sprintf("%d세", a), row.Total, row.Correct, row.Accuracy)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("all", false, "Summarise every learner")
	statsCmd.Flags().String("kind", "", "Only count one kind (quiz, puzzle, vocabulary, comprehension)")
}
