package bundlecheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	issueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA940")).PaddingLeft(4)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
)

// Render formats a report. Passing checks are listed only when verbose.
func Render(r *Report, verbose bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bundle check"))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render(r.BaseURL))
	b.WriteString("\n\n")

	for _, res := range r.Results {
		if res.OK() && !verbose {
			continue
		}
		status := passStyle.Render("PASS")
		if !res.OK() {
			status = failStyle.Render("FAIL")
		}
		fmt.Fprintf(&b, "%s %-16s %s\n", status, res.Check, mutedStyle.Render(res.Case.String()))
		for _, issue := range res.Issues {
			b.WriteString(issueStyle.Render(issue))
			b.WriteString("\n")
		}
	}

	failed := r.Failed()
	summary := fmt.Sprintf("checks: %d\npassed: %d\nfailed: %d\nduration: %s",
		len(r.Results), len(r.Results)-failed, failed, r.Duration.Round(time.Millisecond))
	verdict := passStyle.Render("all checks passed")
	if failed > 0 {
		verdict = failStyle.Render(fmt.Sprintf("%d checks failed", failed))
	}
	b.WriteString("\n")
	b.WriteString(cardStyle.Render(summary + "\n" + verdict))
	b.WriteString("\n")
	return b.String()
}
