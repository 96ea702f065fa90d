// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCoverageMap outputs a human-readable summary of the coverage analysis.
func (p *Printer) PrintCoverageMap(result *types.CoverageMapResult) {
	if result == nil || result.CoverageMap == nil {
		return
	}
	cm := result.CoverageMap

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %.0f%%\n", cm.OverallCoverageScore*100))
	sb.WriteString(fmt.Sprintf("Must-have:    %.0f%%\n", cm.MustHaveCoverageScore*100))
	sb.WriteString(fmt.Sprintf("Nice-to-have: %.0f%%\n", cm.NiceToHaveCoverageScore*100))
	sb.WriteString(fmt.Sprintf("Evidence:     %d items, %d requirements\n",
		result.TotalEvidenceItems, result.TotalRequirements))

	if len(cm.CoveredRequirements) > 0 {
		sb.WriteString("\nCovered:\n")
		count := min(len(cm.CoveredRequirements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", cm.CoveredRequirements[i]))
		}
		if len(cm.CoveredRequirements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cm.CoveredRequirements)-maxItemsToShow))
		}
	}

	if len(cm.CriticalGaps) > 0 {
		sb.WriteString("\nCritical gaps:\n")
		count := min(len(cm.CriticalGaps), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", cm.CriticalGaps[i].RequirementText))
		}
		if len(cm.CriticalGaps) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cm.CriticalGaps)-maxItemsToShow))
		}
	}

	p.printBox("COVERAGE MAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerificationResult outputs the per-component verification breakdown
// for one bullet.
func (p *Printer) PrintVerificationResult(result *types.BulletVerificationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	text := result.BulletText
	if len(text) > 50 {
		text = text[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Bullet: %s\n\n", text))

	for _, cv := range result.ComponentVerifications {
		mark := "✗"
		if cv.IsVerified {
			mark = "✓"
		}
		component := cv.ComponentText
		if len(component) > 30 {
			component = component[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s %-8s %s\n", mark, cv.ComponentName, component))
	}

	sb.WriteString(fmt.Sprintf("\nRate: %.0f%%  Recommendation: %s",
		result.OverallVerificationRate*100, result.Recommendation))

	p.printBox("BULLET VERIFICATION", sb.String())
}

// PrintGeneratedBullets outputs the proposed bullets and suggested edits
// from one generation run.
func (p *Printer) PrintGeneratedBullets(result *types.BulletGenerationResult) {
	if result == nil || result.Metadata.TotalGenerated == 0 {
		return
	}

	var sb strings.Builder
	stats := result.Stats()
	sb.WriteString(fmt.Sprintf("Generated %d bullets (avg verification %.0f%%):\n\n",
		stats.TotalBullets, stats.AverageVerificationRate*100))

	if len(result.ProposedBullets) > 0 {
		sb.WriteString("Proposed:\n")
		count := min(len(result.ProposedBullets), maxItemsToShow)
		for i := 0; i < count; i++ {
			text := result.ProposedBullets[i].Text
			if len(text) > 50 {
				text = text[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", text))
		}
		if len(result.ProposedBullets) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.ProposedBullets)-maxItemsToShow))
		}
	}

	if len(result.SuggestedEdits) > 0 {
		sb.WriteString("\nSuggested edits (need review):\n")
		count := min(len(result.SuggestedEdits), 3)
		for i := 0; i < count; i++ {
			text := result.SuggestedEdits[i].Text
			if len(text) > 50 {
				text = text[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", text))
		}
		if len(result.SuggestedEdits) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.SuggestedEdits)-3))
		}
	}

	p.printBox("GENERATED BULLETS", strings.TrimSuffix(sb.String(), "\n"))
}
