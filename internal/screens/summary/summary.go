// Package summary shows the report at the end of a puzzle game or an
// adaptive test.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dongwha/internal/assessment"
	"github.com/abhisek/dongwha/internal/puzzle"
	"github.com/abhisek/dongwha/internal/router"
	"github.com/abhisek/dongwha/internal/screen"
	"github.com/abhisek/dongwha/internal/ui/layout"
	"github.com/abhisek/dongwha/internal/ui/theme"
)

// Row is one answered item.
type Row struct {
	Label   string
	Detail  string
	Correct bool
}

// Report is what the summary screen renders.
type Report struct {
	Heading  string
	Level    string
	Correct  int
	Total    int
	Accuracy float64
	// Score is hidden when negative.
	Score   int
	Message string
	Rows    []Row
}

// FromGame reports a finished puzzle game.
func FromGame(g *puzzle.Game) Report {
	s := g.Summary()
	r := Report{
		Heading:  "퍼즐 게임 완료!",
		Level:    s.FinalLevel.Describe(),
		Correct:  s.Correct,
		Total:    s.Rounds,
		Accuracy: s.Accuracy,
		Score:    s.Score,
		Message:  s.Message,
	}
	for i, a := range g.History() {
		r.Rows = append(r.Rows, Row{
			Label:   fmt.Sprintf("%d번", i+1),
			Detail:  puzzle.Level{Age: a.Age, Difficulty: a.Difficulty}.Describe(),
			Correct: a.Passed,
		})
	}
	return r
}

// FromTest reports a finished adaptive test.
func FromTest(heading string, res *assessment.TestResult) Report {
	r := Report{
		Heading:  heading,
		Level:    fmt.Sprintf("%d세 수준", res.EstimatedLevel),
		Correct:  res.CorrectCount,
		Total:    res.TotalQuestions,
		Accuracy: res.Accuracy,
		Score:    -1,
		Message:  puzzle.Encouragement(res.CorrectCount, res.TotalQuestions),
	}
	for i, q := range res.Results {
		detail := fmt.Sprintf("%d세  정답: %s", q.AgeLevel, q.CorrectAnswer)
		if !q.Correct && q.UserAnswer != "" {
			detail += fmt.Sprintf("  (고른 답: %s)", q.UserAnswer)
		}
		r.Rows = append(r.Rows, Row{Label: fmt.Sprintf("%d번", i+1), Detail: detail, Correct: q.Correct})
	}
	return r
}

// SummaryScreen displays a Report.
type SummaryScreen struct {
	report Report
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

func New(report Report) *SummaryScreen {
	return &SummaryScreen{report: report}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "결과"
}

func (s *SummaryScreen) Status() string {
	return s.report.Level
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "처음으로"},
		{Key: "Ctrl+C", Description: "끝내기"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, router.Back
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.report
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title, r.Heading))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), "최종 수준: "+r.Level))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("맞힌 문제: %d / %d        정답률: %.1f%%", r.Correct, r.Total, r.Accuracy)
	if r.Score >= 0 {
		stats += fmt.Sprintf("        점수: %d점", r.Score)
	}
	b.WriteString(center(theme.Body, stats))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), r.Message))
	b.WriteString("\n\n")

	if len(r.Rows) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 50)))
		b.WriteString(layout.Centered(width, divider))
		b.WriteString("\n")
		for _, row := range r.Rows {
			mark, style := "✓", theme.Correct
			if !row.Correct {
				mark, style = "✗", theme.Incorrect
			}
			line := fmt.Sprintf("%s  %-4s %s", style.Render(mark), row.Label, theme.Body.Render(row.Detail))
			b.WriteString(layout.Centered(width, line))
			b.WriteString("\n")
		}
	}
	return b.String()
}
