package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/vidqa/internal/models"
)

func TestDefaultLibrary(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, lib.Version())
	assert.ElementsMatch(t, []string{NameAnswer, NameSummary, NameCondense}, lib.Names())
}

func TestRender_Answer(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	t.Run("embeds refusal and inputs", func(t *testing.T) {
		out, err := lib.Render(NameAnswer, map[string]any{
			"context":  "[01:05] Pricing starts at ten dollars.",
			"question": "What is discussed about pricing?",
			"history":  "",
		})
		require.NoError(t, err)

		assert.Contains(t, out, `"`+Refusal+`"`)
		assert.Contains(t, out, "[01:05] Pricing starts at ten dollars.")
		assert.Contains(t, out, "What is discussed about pricing?")
		assert.NotContains(t, out, "Conversation so far")
	})

	t.Run("includes history when present", func(t *testing.T) {
		out, err := lib.Render(NameAnswer, map[string]any{
			"context":  "ctx",
			"question": "What about its price?",
			"history":  "User: Tell me about the launch\nAssistant: It is in March.",
		})
		require.NoError(t, err)

		assert.Contains(t, out, "Conversation so far:")
		assert.Contains(t, out, "User: Tell me about the launch")
	})
}

func TestRender_Summary(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	out, err := lib.Render(NameSummary, map[string]any{"context": "[00:00] Welcome"})
	require.NoError(t, err)

	assert.Contains(t, out, "MAIN THEMES")
	assert.Contains(t, out, "Do NOT invent topics")
	assert.Contains(t, out, Refusal)
}

func TestRender_Errors(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	_, err = lib.Render("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	_, err = lib.Render(NameCondense, map[string]any{"question": "q"})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: "version: \"1\"\ntemplates:\n  a:\n    grounded: true\n    inputs: [x]\n    text: \"{{.x}} or {{.refusal}}\"\n",
		},
		{
			name:    "grounded without refusal",
			yaml:    "templates:\n  a:\n    grounded: true\n    text: \"{{.x}}\"\n",
			wantErr: true,
		},
		{
			name:    "empty text",
			yaml:    "templates:\n  a:\n    text: \"  \"\n",
			wantErr: true,
		},
		{
			name:    "no templates",
			yaml:    "version: \"1\"\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			yaml:    "templates: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestContextBlock(t *testing.T) {
	docs := []models.Chunk{
		{Content: "Welcome to the show.", StartTime: models.Seconds(0)},
		{Content: "Pricing starts at ten dollars.", StartTime: models.Seconds(65.9)},
		{Content: "An untimed note."},
	}

	got := ContextBlock(docs)

	assert.Equal(t, "[00:00] Welcome to the show.\n\n[01:05] Pricing starts at ten dollars.\n\nAn untimed note.", got)
	assert.Empty(t, ContextBlock(nil))
}
