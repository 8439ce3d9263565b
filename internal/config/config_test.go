package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cnvmerge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "logistic", cfg.Model)
	assert.Equal(t, PolicyExcludedIntervals, cfg.Policy)
	assert.Equal(t, DefaultMinimumCallSize, cfg.MinimumCallSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults with file values", func(t *testing.T) {
		path := writeConfig(t, "model: generalized-linear\npolicy: span\nmaximum_merge_span: 5000\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "generalized-linear", cfg.Model)
		assert.Equal(t, PolicySpan, cfg.Policy)
		assert.Equal(t, 5000, cfg.MaximumMergeSpan)
		// Untouched fields keep their defaults.
		assert.Equal(t, DefaultMinimumCallSize, cfg.MinimumCallSize)
		assert.Equal(t, "SAMPLE", cfg.SampleName)
	})

	t.Run("rejects an unknown model", func(t *testing.T) {
		path := writeConfig(t, "model: perceptron\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown scoring model")
	})

	t.Run("rejects an unknown policy", func(t *testing.T) {
		path := writeConfig(t, "policy: everything\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown merge policy")
	})

	t.Run("rejects a non-positive minimum call size", func(t *testing.T) {
		path := writeConfig(t, "minimum_call_size: -5\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "minimum call size")
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}
