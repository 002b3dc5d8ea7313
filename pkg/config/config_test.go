package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DefaultsWhenNoYAML(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, ModeFast, cfg.Defaults.ConsiliumMode)
	assert.Equal(t, 5, cfg.Defaults.KBTopK)
	assert.True(t, cfg.KBSourceRegistry.Has(AgentRoleDev))
	assert.Equal(t, DirectorModeShadow, cfg.Director.Mode)

	stats := cfg.Stats()
	assert.Equal(t, 7, stats.KBSources)
	assert.Equal(t, 5, stats.Domains)
	assert.Equal(t, 2, stats.LLMProviders)
}

func TestInitialize_UserYAMLOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
defaults:
  kb_top_k: 9
  consilium_mode: STANDARD
director:
  mode: active
kb_sources:
  dev:
    path: custom/dev.md
llm:
  main:
    base_url: http://example.com/v1
    model: custom-model
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "consilium.yaml"), []byte(yamlContent), 0o644))

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Defaults.KBTopK)
	assert.Equal(t, ModeStandard, cfg.Defaults.ConsiliumMode)
	assert.Equal(t, DirectorModeActive, cfg.Director.Mode)

	src, err := cfg.KBSourceRegistry.Get(AgentRoleDev)
	require.NoError(t, err)
	assert.Equal(t, "custom/dev.md", src.Path)

	provider, err := cfg.GetLLMProvider("main")
	require.NoError(t, err)
	assert.Equal(t, "custom-model", provider.Model)
}

func TestInitialize_InvalidModeFailsValidation(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
defaults:
  consilium_mode: NOT_A_MODE
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "consilium.yaml"), []byte(yamlContent), 0o644))

	_, err := Initialize(context.Background(), dir)
	require.Error(t, err)
}
