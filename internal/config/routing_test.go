package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/vidqa/internal/classify"
)

func TestParseRouting(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Routing
		wantErr bool
	}{
		{
			name: "all lists",
			yaml: "summary: [recap, tl;dr]\ndeep: [walk me through]\nprobes: [opening remarks, final verdict]\n",
			want: Routing{
				Keywords: classify.Keywords{Summary: []string{"recap", "tl;dr"}, Deep: []string{"walk me through"}},
				Probes:   []string{"opening remarks", "final verdict"},
			},
		},
		{
			name: "probes only",
			yaml: "probes:\n  - intro\n",
			want: Routing{Probes: []string{"intro"}},
		},
		{
			name:    "unknown key",
			yaml:    "sumary: [recap]\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRouting([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.IsZero())
		})
	}
}

func TestLoadRouting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deep: [step by step]\n"), 0o644))

	r, err := LoadRouting(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"step by step"}, r.Deep)
	assert.Empty(t, r.Summary)

	_, err = LoadRouting(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	assert.True(t, Routing{}.IsZero())
}

func TestLoad_RoutingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VIDQA_ROUTING_FILE", "/etc/vidqa/routing.yaml")

	cfg := Load()
	assert.Equal(t, "/etc/vidqa/routing.yaml", cfg.RoutingFile)
	assert.True(t, cfg.Routing.IsZero(), "Load does not read the file")
}
