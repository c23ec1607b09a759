package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a fill-in-the-blank vocabulary quiz",
	Long: `Build a vocabulary quiz for an age group and answer it at the prompt.

Answers are recorded in the history under --user. With --json the quiz is
printed instead and nothing is recorded.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().Int("age", 6, "Age group 4-13")
	quizCmd.Flags().IntP("count", "n", 0, "Number of questions (0 uses the configured default)")
	quizCmd.Flags().Bool("json", false, "Print the quiz as JSON")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	age, _ := cmd.Flags().GetInt("age")
	count, _ := cmd.Flags().GetInt("count")
	asJSON, _ := cmd.Flags().GetBool("json")

	a, err := loadApp(cmd, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	userID := learnerID(cmd)
	q, err := a.Quiz.BuildQuiz(ctx, quiz.Request{AgeGroup: age, NumQuestions: count, UserID: userID})
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(q)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct int
	for i, item := range q.Questions {
		fmt.Printf("── 문제 %d/%d ──\n", i+1, len(q.Questions))
		fmt.Println(item.Sentence)
		for j, opt := range item.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\n답: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := pickOption(strings.TrimSpace(scanner.Text()), item.Options)
		if answer == "" {
			fmt.Println("(건너뜀)")
			fmt.Println()
			continue
		}

		res, err := a.Quiz.Submit(ctx, quiz.Submission{
			UserID:        userID,
			QuestionID:    item.QuestionID,
			UserAnswer:    answer,
			CorrectAnswer: item.CorrectAnswer,
			Word:          item.CorrectAnswer,
			Sentence:      item.Sentence,
			AgeGroup:      age,
		})
		if err != nil {
			return err
		}
		if res.IsCorrect {
			correct++
			fmt.Println("\033[32m✓ 정답!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ 아쉬워요.\033[0m 정답: %s\n", res.CorrectAnswer)
		}
		fmt.Println(res.Explanation)
		fmt.Println()
	}

	fmt.Printf("── 결과: %d/%d 정답 ──\n", correct, len(q.Questions))
	return nil
}

// pickOption accepts either an option number or the word itself.
func pickOption(in string, options []string) string {
	if n, err := strconv.Atoi(in); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1]
		}
		return ""
	}
	return in
}
