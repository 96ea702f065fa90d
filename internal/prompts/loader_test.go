package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	ClearCache()

	prompt, err := Get("verification.json", "semantic_equivalence")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Claim}}")
	assert.Contains(t, prompt, "{{.Evidence}}")
	assert.Contains(t, prompt, "{{.ComponentType}}")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("verification.json", "does_not_exist")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "semantic_equivalence")
	assert.Error(t, err)
}

func TestMustGet_GenerationPrompt(t *testing.T) {
	prompt := MustGet("generation.json", "amot_bullet")
	assert.Contains(t, prompt, "{{.Requirement}}")
	assert.Contains(t, prompt, "AMOT format")
}

func TestFormat(t *testing.T) {
	got := Format("Claim: {{.Claim}} against {{.Evidence}}", map[string]string{
		"Claim":    "Led team",
		"Evidence": "Managed engineers",
	})
	assert.Equal(t, "Claim: Led team against Managed engineers", got)
	assert.False(t, strings.Contains(got, "{{"))
}
