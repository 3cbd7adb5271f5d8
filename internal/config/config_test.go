package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, UnitLbs, cfg.WeightUnit)
	assert.Empty(t, cfg.UserID)
	assert.Empty(t, cfg.TagDevice)
}

func TestLoad_ReadsProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"user_id: user-1\nweight_unit: kg\ntag_device: /tmp/tag\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user-1", cfg.UserID)
	assert.Equal(t, UnitKg, cfg.WeightUnit)
	assert.Equal(t, "/tmp/tag", cfg.TagDevice)
}

func TestLoad_RejectsUnknownUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weight_unit: stone\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	original := &Config{UserID: "user-1", DisplayName: "Sam", WeightUnit: UnitLbs}

	require.NoError(t, Save(original, path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}
