// Package output renders brewdoctor's advisory reports and run history
// for the terminal, with TTY-aware ANSI color.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/brewdoctor/internal/diagnose"
	"github.com/blackwell-systems/brewdoctor/internal/store"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderReport renders the advisories of one diagnostic pass. Advisories
// keep their run order; the first line of each is the warning headline
// and the remaining lines are indented under it.
func RenderReport(results []diagnose.Result) string {
	if len(results) == 0 {
		return colorize(colorGreen, "Your system is ready to brew.") + "\n"
	}

	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		lines := strings.Split(r.Message, "\n")
		sb.WriteString(colorize(colorYellow, "Warning"))
		sb.WriteString(": ")
		sb.WriteString(lines[0])
		sb.WriteString("\n")
		for _, line := range lines[1:] {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(colorize(colorGray, fmt.Sprintf("  (%s)", r.Name)))
		sb.WriteString("\n")
	}

	plural := "s"
	if len(results) == 1 {
		plural = ""
	}
	fmt.Fprintf(&sb, "\nFound %d issue%s.\n", len(results), plural)
	return sb.String()
}

// RenderRunTable renders past diagnostic runs, newest first.
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No recorded runs. Run 'brewdoctor check' first.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s %-16s %-8s %-10s %s\n",
		"Run", "When", "Checks", "Advisories", "Duration"))
	sb.WriteString(strings.Repeat("─", 56))
	sb.WriteString("\n")

	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%-6d %-16s %-8d %-10d %s\n",
			run.ID,
			formatRelativeTime(run.StartedAt),
			run.ChecksRun,
			run.AdvisoryCount,
			run.Duration.Round(time.Millisecond)))
	}
	return sb.String()
}

// formatRelativeTime renders a timestamp as a coarse "N days ago" string.
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
