// Package amot parses resume bullets into their Action, Metric, Outcome, and
// Tool components so each claim can be verified independently.
package amot

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Placeholder values for components the parser could not locate. Verification
// treats them differently from real components.
const (
	MetricNotFound  = "[metric not found]"
	OutcomeNotFound = "[outcome not found]"
	ToolNotFound    = "[tool not found]"
)

// Metric patterns in priority order. Percentages win over currency, currency
// over counts, counts over bracketed placeholders.
var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`[$£€]\d[\d,.]*[KMB]?`),
	regexp.MustCompile(`\d+\+?\s+\w+`),
	regexp.MustCompile(`\[[$£€]?[A-Z0-9%]+\]`),
}

// Outcome patterns: result indicator followed by the result phrase, up to the
// next clause boundary.
var outcomePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)resulting in [^,.;]+`),
	regexp.MustCompile(`(?i)leading to [^,.;]+`),
	regexp.MustCompile(`(?i)achiev(?:ing|ed) [^,.;]+`),
	regexp.MustCompile(`(?i)driving [^,.;]+`),
}

// Tool patterns: method/technology indicator followed by its object.
var toolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)via [^,.;]+`),
	regexp.MustCompile(`(?i)using [^,.;]+`),
	regexp.MustCompile(`(?i)through [^,.;]+`),
	regexp.MustCompile(`(?i)leveraging [^,.;]+`),
}

// Parse splits a bullet into AMOT components. Parsing is heuristic: the goal
// is identifying the claims being made, not a perfect grammar. Missing
// components get placeholder strings.
func Parse(bulletText string) types.AMOTComponents {
	words := strings.Fields(strings.TrimSpace(bulletText))
	action := ""
	if len(words) > 0 {
		action = words[0]
	}

	metric := MetricNotFound
	for _, p := range metricPatterns {
		if m := p.FindString(bulletText); m != "" {
			metric = m
			break
		}
	}

	outcome := OutcomeNotFound
	for _, p := range outcomePatterns {
		if m := p.FindString(bulletText); m != "" {
			outcome = m
			break
		}
	}

	tool := ToolNotFound
	for _, p := range toolPatterns {
		if m := p.FindString(bulletText); m != "" {
			tool = m
			break
		}
	}

	return types.AMOTComponents{
		Action:   action,
		Metric:   metric,
		Outcome:  outcome,
		Tool:     tool,
		FullText: bulletText,
	}
}
