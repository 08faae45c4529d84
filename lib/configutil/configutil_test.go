package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Query    string `json:"query"`
	MaxPages int    `json:"max_pages"`
}

func TestReadConfigOrDefaultMissingFile(t *testing.T) {
	defaults := testConfig{Query: "fallback", MaxPages: 15}

	got, err := ReadConfigOrDefault(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, got)
}

func TestReadConfigOrDefaultPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	err := os.WriteFile(path, []byte(`{ max_pages: 3 }`), 0644)
	require.NoError(t, err)

	got, err := ReadConfigOrDefault(path, testConfig{Query: "fallback", MaxPages: 15})
	require.NoError(t, err)
	require.Equal(t, testConfig{Query: "fallback", MaxPages: 3}, got)
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{ query: "base", max_pages: 5 }`), 0644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{ max_pages: 9 }`), 0644)
	require.NoError(t, err)

	got, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Query: "base", MaxPages: 9}, got)
}
