package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("advisor.json", "explain_best")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Name}}")
	assert.Contains(t, prompt, "{{.Rating}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("advisor.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt key")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "explain_best")
	require.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("advisor.json", "nonexistent") })
	assert.NotPanics(t, func() { MustGet("advisor.json", "fallback") })
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, rating {{.Rating}}", map[string]string{
		"Name":   "Alpha Institute",
		"Rating": "4.5",
	})
	assert.Equal(t, "Hello Alpha Institute, rating 4.5", out)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	out := Format("{{.Known}} and {{.Unknown}}", map[string]string{"Known": "x"})
	assert.Equal(t, "x and {{.Unknown}}", out)
}

func TestAdvisorPrompts_AllKeysPresent(t *testing.T) {
	for _, key := range []string{"explain_best", "general_question", "fallback"} {
		_, err := Get("advisor.json", key)
		assert.NoError(t, err, key)
	}
}
