package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "cyan", cfg.PromptColor)
	assert.Empty(t, cfg.Prelude)
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".janusrc.yaml")
	contents := "prompt_color: magenta\nhistory_file: /tmp/hist\nprelude:\n  - prelude.janus\n  - extra.janus\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "magenta", cfg.PromptColor)
	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
	assert.Equal(t, []string{"prelude.janus", "extra.janus"}, cfg.Prelude)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".janusrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt_color: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
