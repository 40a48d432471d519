package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hypermedia/internal/constants"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("HYPERMEDIA_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("HYPERMEDIA_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("HYPERMEDIA_TEST_MISSING", "fallback"))

	t.Setenv("HYPERMEDIA_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("HYPERMEDIA_TEST_EMPTY", "fallback"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(constants.EnvConfigFile, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAddress, cfg.Address)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)

	assert.Equal(t, []hypermedia.Type{hypermedia.HAL}, cfg.Types)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
address: ":9000"
base_url: "https://api.example.com"
types: ["hal"]
curie:
  name: ex
  href: "https://example.com/rels/{rel}"
disable_pluralization: true
db:
  host: db.internal
  port: 6543
  name: projects
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(constants.EnvConfigFile, path)
	t.Setenv(constants.EnvBaseURL, "https://public.example.com")
	t.Setenv(constants.EnvDBSSLMode, "require")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Address)
	assert.Equal(t, "https://public.example.com", cfg.BaseURL)
	assert.Equal(t, []hypermedia.Type{hypermedia.HAL}, cfg.Types)
	assert.Equal(t, Curie{Name: "ex", Href: "https://example.com/rels/{rel}"}, cfg.Curie)
	assert.True(t, cfg.DisablePluralization)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "projects", cfg.DB.DBName)
	require.NotNil(t, cfg.DB.SSLEnabled)
	assert.True(t, *cfg.DB.SSLEnabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unsupported type",
			env:  map[string]string{constants.EnvTypes: "siren"},
		},
		{
			name: "invalid pluralization flag",
			env:  map[string]string{constants.EnvDisablePluralization: "sometimes"},
		},
		{
			name: "invalid db port",
			env:  map[string]string{constants.EnvDBPort: "postgres"},
		},
		{
			name: "curie without href",
			env:  map[string]string{constants.EnvCurieName: "ex"},
		},
		{
			name: "missing config file",
			env:  map[string]string{constants.EnvConfigFile: "/does/not/exist.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvConfigFile, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadFileRejectsUnsupportedType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`types: ["siren"]`), 0o600))

	cfg := Default()
	err := cfg.LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, hypermedia.ErrUnsupportedType)
}

func TestEnvTypes(t *testing.T) {
	t.Setenv(constants.EnvConfigFile, "")
	t.Setenv(constants.EnvTypes, "hal, HAL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []hypermedia.Type{hypermedia.HAL, hypermedia.HAL}, cfg.Types)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Types = nil
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Types = []hypermedia.Type{hypermedia.Type(9)}
	assert.ErrorIs(t, cfg.Validate(), hypermedia.ErrUnsupportedType)

	cfg = Default()
	cfg.Address = ""
	assert.Error(t, cfg.Validate())
}
