package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rulekit/rulekit/internal/domain"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(60)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 56))
)

// RenderDirectoryReport renders a full directory scan as a styled
// terminal report: health box, type distribution, top errors, and
// per-file detail for invalid files.
func RenderDirectoryReport(results []domain.ValidationResult, stats domain.DirectoryStats) string {
	var b strings.Builder

	title := headerStyle.Render("rulekit")
	subtitle := dimStyle.Render("Rule Document Health")
	healthStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(healthColor(stats.HealthScore)).
		Render(fmt.Sprintf("%.1f%%", stats.HealthScore))
	countLine := dimStyle.Render(fmt.Sprintf("%d valid / %d invalid / %d total",
		stats.ValidFiles, stats.InvalidFiles, stats.TotalFiles))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + healthStyled + "\n" + countLine))
	b.WriteString("\n\n")

	renderTypeDistribution(&b, stats)
	renderTopErrors(&b, stats)

	b.WriteString("  " + separatorLine + "\n\n")
	renderFileDetails(&b, results)

	return b.String()
}

func renderTypeDistribution(b *strings.Builder, stats domain.DirectoryStats) {
	if len(stats.ByType) == 0 {
		return
	}

	b.WriteString("  " + titleStyle.Render("Types") + "\n")
	for _, t := range domain.RuleTypes {
		count, ok := stats.ByType[t]
		if !ok {
			continue
		}
		bar := countBar(count, stats.TotalFiles, 20)
		fmt.Fprintf(b, "    %s %s %s\n",
			padRight(string(t), 8), bar, dimStyle.Render(fmt.Sprintf("%d", count)))
	}
	b.WriteString("\n")
}

func renderTopErrors(b *strings.Builder, stats domain.DirectoryStats) {
	if len(stats.TopErrors) == 0 {
		return
	}

	b.WriteString("  " + titleStyle.Render("Top Errors") + "\n")
	for _, e := range stats.TopErrors {
		fmt.Fprintf(b, "    %s %s\n",
			errorTagStyle.Render(fmt.Sprintf("%dx", e.Count)),
			dimStyle.Render(e.Message))
	}
	b.WriteString("\n")
}

func renderFileDetails(b *strings.Builder, results []domain.ValidationResult) {
	invalid := 0
	for _, r := range results {
		if !r.IsValid {
			invalid++
		}
	}

	if invalid == 0 {
		b.WriteString("  " + passStyle.Render("All rule documents are valid.") + "\n")
		return
	}

	for _, r := range results {
		if r.IsValid {
			continue
		}
		fmt.Fprintf(b, "  %s %s %s\n",
			failStyle.Render("✗"),
			fileStyle.Render(shortenPath(r.FilePath)),
			faintStyle.Render(string(r.RuleType)))
		for _, e := range r.Errors {
			fmt.Fprintf(b, "      %s %s\n", errorTagStyle.Render("error"), dimStyle.Render(e))
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(b, "      %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(w))
		}
	}
}

// RenderFileResult renders a single file validation.
func RenderFileResult(r domain.ValidationResult) string {
	var b strings.Builder

	var status string
	if r.IsValid {
		status = passStyle.Render("valid")
	} else {
		status = failStyle.Render("invalid")
	}

	fmt.Fprintf(&b, "  %s  %s  %s\n",
		titleStyle.Render(shortenPath(r.FilePath)),
		status,
		faintStyle.Render(string(r.RuleType)))

	for _, e := range r.Errors {
		fmt.Fprintf(&b, "    %s %s\n", errorTagStyle.Render("error"), dimStyle.Render(e))
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "    %s %s\n", warnTagStyle.Render("warn "), dimStyle.Render(w))
	}

	if r.IsValid && len(r.Warnings) == 0 {
		b.WriteString("    " + passStyle.Render("No issues found.") + "\n")
	}

	fmt.Fprintf(&b, "    %s\n", faintStyle.Render(fmt.Sprintf("%d lines, %d bytes, %d metadata fields",
		r.Metadata.LineCount, r.Metadata.FileSize, len(r.Metadata.Fields))))

	return b.String()
}

func healthColor(score float64) lipgloss.Color {
	switch {
	case score >= 90:
		return success
	case score >= 70:
		return lipgloss.Color("#A3E635") // lime
	case score >= 50:
		return warning
	default:
		return danger
	}
}

func countBar(count, total, width int) string {
	if total == 0 {
		total = 1
	}
	filled := count * width / total
	if filled > width {
		filled = width
	}
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled))
	emptyStr := faintStyle.Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
