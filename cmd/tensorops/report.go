package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/born-ml/tensorops/internal/conformance"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Padding(1, 0, 0, 0)
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	redRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
			Bold(true).
			PaddingLeft(1).PaddingRight(1)
)

// renderReports formats one table per report, failed checks in red.
func renderReports(reports []conformance.Report) string {
	var sb strings.Builder
	for _, report := range reports {
		failed := len(report.Failures())
		title := fmt.Sprintf("%s: %d/%d passed in %s", report.Backend,
			len(report.Results)-failed, len(report.Results), report.Elapsed.Round(time.Microsecond))
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")
		sb.WriteString(newReportTable(report).Render())
		sb.WriteString("\n")
	}
	return sb.String()
}

func newReportTable(report conformance.Report) *lgtable.Table {
	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("Check", "Result", "Time").
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row < 0:
				return headerRowStyle
			case !report.Results[row].Passed():
				s = redRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 2 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	for _, r := range report.Results {
		result := "ok"
		if !r.Passed() {
			result = "FAIL: " + r.Err.Error()
		}
		t.Row(r.Name, result, r.Elapsed.String())
	}
	return t
}
