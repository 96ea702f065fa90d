package amot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_FullBullet(t *testing.T) {
	c := Parse("Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile")

	assert.Equal(t, "Led", c.Action)
	assert.Equal(t, "35%", c.Metric)
	assert.Equal(t, "resulting in 35% delivery speedup using Agile", c.Outcome)
	assert.Equal(t, "using Agile", c.Tool)
	assert.Equal(t, "Led Python team of 8 for 6 years, resulting in 35% delivery speedup using Agile", c.FullText)
}

func TestParse_Action(t *testing.T) {
	assert.Equal(t, "Drove", Parse("Drove adoption of CI pipelines").Action)
	assert.Equal(t, "Increased", Parse("  Increased revenue").Action)
	assert.Equal(t, "", Parse("").Action)
	assert.Equal(t, "", Parse("   ").Action)
}

func TestParse_MetricPriority(t *testing.T) {
	// Percentage wins over currency and counts
	c := Parse("Grew revenue by $1.8M and improved margin 12% across 40 accounts")
	assert.Equal(t, "12%", c.Metric)

	// Currency wins over counts
	c = Parse("Closed $400K in deals across 12 regions")
	assert.Equal(t, "$400K", c.Metric)

	// Count pattern
	c = Parse("Migrated 50+ services to Kubernetes")
	assert.Equal(t, "50+ services", c.Metric)

	// Bracketed placeholder
	c = Parse("Improved throughput by [X%] after the rollout")
	assert.Equal(t, "[X%]", c.Metric)
}

func TestParse_MetricNotFound(t *testing.T) {
	c := Parse("Improved collaboration across teams")
	assert.Equal(t, MetricNotFound, c.Metric)
}

func TestParse_OutcomeIndicators(t *testing.T) {
	assert.Equal(t, "resulting in faster releases",
		Parse("Automated builds, resulting in faster releases.").Outcome)
	assert.Equal(t, "leading to higher retention",
		Parse("Redesigned onboarding, leading to higher retention, and more").Outcome)
	assert.Equal(t, "achieving record uptime",
		Parse("Hardened the platform, achieving record uptime; no incidents").Outcome)
	assert.Equal(t, "achieved 99% SLA compliance",
		Parse("Restructured on-call and achieved 99% SLA compliance").Outcome)
	assert.Equal(t, "driving a 2x increase in signups",
		Parse("Launched referrals, driving a 2x increase in signups").Outcome)
	assert.Equal(t, OutcomeNotFound,
		Parse("Managed a team of engineers").Outcome)
}

func TestParse_OutcomeStopsAtClauseBoundary(t *testing.T) {
	c := Parse("Shipped v2, resulting in 30% fewer bugs, and happier users")
	assert.Equal(t, "resulting in 30% fewer bugs", c.Outcome)
}

func TestParse_ToolIndicators(t *testing.T) {
	assert.Equal(t, "via Salesforce", Parse("Tracked pipeline via Salesforce, daily").Tool)
	assert.Equal(t, "using Python", Parse("Built ETL using Python.").Tool)
	assert.Equal(t, "through Agile ceremonies", Parse("Aligned teams through Agile ceremonies; weekly").Tool)
	assert.Equal(t, "leveraging Terraform", Parse("Provisioned infra leveraging Terraform").Tool)
	assert.Equal(t, ToolNotFound, Parse("Managed vendor relationships").Tool)
}

func TestParse_Idempotent(t *testing.T) {
	text := "Led migration of 50+ services, resulting in 35% cost savings using Terraform"
	first := Parse(text)
	second := Parse(text)
	assert.Equal(t, first, second)
}
