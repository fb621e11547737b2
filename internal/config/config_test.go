package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 250, cfg.Classify.MaxLLMCategories)
	assert.Equal(t, 20, cfg.Classify.LLMBatchSize)
	assert.Equal(t, 30, cfg.Classify.LLMRequestsPerMinute)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Anthropic.Key)
	assert.Empty(t, cfg.Taxonomy.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TERRITORY_ANTHROPIC_KEY", "sk-test")
	t.Setenv("TERRITORY_CLASSIFY_MAX_LLM_CATEGORIES", "10")
	t.Setenv("TERRITORY_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, 10, cfg.Classify.MaxLLMCategories)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadBatchSizeFloor(t *testing.T) {
	t.Setenv("TERRITORY_CLASSIFY_LLM_BATCH_SIZE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Classify.LLMBatchSize)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level", Format: "json"}))
}
