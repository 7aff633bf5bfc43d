package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rulekit/rulekit/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderMigration renders a MigrationOutcome as a styled terminal report.
func RenderMigration(outcome *domain.MigrationOutcome) string {
	var b strings.Builder

	mode := "migration"
	if outcome.Preview {
		mode = "migration preview"
	}

	summary := fmt.Sprintf("%d migrated / %d failed / %d total",
		outcome.MigratedFiles, outcome.FailedFiles, outcome.TotalFiles)

	b.WriteString(boxStyle.Render(
		headerStyle.Render("rulekit") + "\n" +
			dimStyle.Render(mode) + "\n\n" +
			titleStyle.Render(summary)))
	b.WriteString("\n")

	if len(outcome.TypeDistribution) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Resulting Types") + "\n")
		for _, t := range domain.RuleTypes {
			if count, ok := outcome.TypeDistribution[t]; ok {
				fmt.Fprintf(&b, "    %s %s\n",
					padRight(string(t), 8), dimStyle.Render(fmt.Sprintf("%d", count)))
			}
		}
	}

	renderMigrationFiles(&b, outcome.Files)

	if outcome.Preview && outcome.MigratedFiles > 0 {
		b.WriteString("\n  " + hintStyle.Render("Run again without --preview to apply.") + "\n")
	}

	return b.String()
}

func renderMigrationFiles(b *strings.Builder, files []domain.FileMigration) {
	changed := 0
	for _, f := range files {
		if f.Status != domain.MigrationUnchanged {
			changed++
		}
	}
	if changed == 0 {
		b.WriteString("\n  " + passStyle.Render("All rule documents already conform.") + "\n")
		return
	}

	b.WriteString("\n")
	for _, f := range files {
		switch f.Status {
		case domain.MigrationMigrated:
			fmt.Fprintf(b, "  %s %s %s\n",
				passStyle.Render("✓"),
				fileStyle.Render(shortenPath(f.Path)),
				faintStyle.Render(fmt.Sprintf("%s → %s", orDash(f.TypeBefore), f.TypeAfter)))
		case domain.MigrationFailed:
			fmt.Fprintf(b, "  %s %s\n", failStyle.Render("✗"), fileStyle.Render(shortenPath(f.Path)))
			if f.Reason != "" {
				fmt.Fprintf(b, "      %s\n", warnStyle.Render(f.Reason))
			}
		}
	}
}

func orDash(t domain.RuleType) string {
	if t == "" {
		return "·"
	}
	return string(t)
}
