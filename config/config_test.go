package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "chemalert.yml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", cfg.Catalog.Source)
	assert.Equal(t, "light", cfg.Web.Theme)
	assert.Equal(t, 10, cfg.Web.SearchLimit)
	assert.Equal(t, "/var/chemalert/logs", cfg.GetLogDir())
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
web:
  port: 8080
  theme: dark
catalog:
  source: file
  path: ./products.csv
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, "dark", cfg.Web.Theme)
	assert.Equal(t, "file", cfg.Catalog.Source)
	// untouched sections keep defaults
	assert.Equal(t, "Asia/Kolkata", cfg.System.Location)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHEMALERT_WEB_PORT", "9090")
	t.Setenv("CHEMALERT_WEB_THEME", "dark")
	t.Setenv("CHEMALERT_DB_DEBUG", "true")
	t.Setenv("CHEMALERT_WEB_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "dark", cfg.Web.Theme)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Web.CorsOrigins)
}

func TestEnvOverrideIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CHEMALERT_WEB_PORT", "eighty")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 1980, cfg.Web.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *AppConfig)
	}{
		{"bad theme", func(c *AppConfig) { c.Web.Theme = "blue" }},
		{"bad port", func(c *AppConfig) { c.Web.Port = 0 }},
		{"file without path", func(c *AppConfig) { c.Catalog.Source = "file" }},
		{"bad source", func(c *AppConfig) { c.Catalog.Source = "s3" }},
		{"bad db type", func(c *AppConfig) { c.Catalog.Source = "database"; c.Database.Type = "mysql" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultAppConfig()
	cfg.Web.SearchLimit = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Web.SearchLimit)
}
