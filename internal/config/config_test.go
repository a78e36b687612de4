package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chaisql/amf3"
	"github.com/chaisql/amf3/internal/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"config.toml", `
[codec]
max_depth = 16
keep_references = true

[store]
path = "/tmp/so.db"

[log]
verbosity = 1
`},
		{"config.yaml", `
codec:
  max_depth: 16
  keep_references: true
store:
  path: /tmp/so.db
log:
  verbosity: 1
`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := config.Load(writeFile(t, test.name, test.content))
			require.NoError(t, err)

			require.Equal(t, 16, cfg.Codec.MaxDepth)
			require.Equal(t, uint32(amf3.DefaultMaxDenseCount), cfg.Codec.MaxDenseCount)
			require.Equal(t, "/tmp/so.db", cfg.Store.Path)
			require.Equal(t, 1, cfg.Log.Verbosity)

			opts := cfg.CodecOptions()
			require.True(t, opts.KeepReferences)
			require.False(t, opts.DisallowEmptyStrings)
			require.Equal(t, 16, opts.MaxDepth)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown.toml", "[codec]\nmax_deph = 3\n"},
		{"unknown.yml", "codec:\n  max_deph: 3\n"},
		{"depth.toml", "[codec]\nmax_depth = -1\n"},
		{"verbosity.yaml", "log:\n  verbosity: 9\n"},
		{"config.json", "{}"},
		{"broken.toml", "[codec"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, test.name, test.content))
			require.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, config.DefaultStorePath, cfg.Store.Path)
	require.Equal(t, amf3.DefaultMaxDepth, cfg.Codec.MaxDepth)
}
