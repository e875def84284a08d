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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: wellspring
database:
  path: "test.db"
auth:
  admin_email: "admin@example.com"
  admin_password: "secret"
  jwt_secret: "signing-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, 24, cfg.Auth.SessionTTL)
	assert.Equal(t, "primary", cfg.Google.CalendarID)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "configs/services.yaml", cfg.Catalog.Path)
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_ADMIN_PASSWORD", "from-env")

	path := writeConfig(t, `
database:
  path: "test.db"
auth:
  admin_email: "admin@example.com"
  admin_password: "${TEST_ADMIN_PASSWORD}"
  jwt_secret: "signing-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.AdminPassword)
}

func TestLoadConfigMissingCredentials(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "test.db"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGoogleConfigured(t *testing.T) {
	g := GoogleConfig{}
	assert.False(t, g.Configured())

	g = GoogleConfig{ClientID: "id", ClientSecret: "secret", RefreshToken: "token"}
	assert.True(t, g.Configured())
}

func TestSMTPConfigured(t *testing.T) {
	assert.False(t, SMTPConfig{Host: "smtp.gmail.com"}.Configured())
	assert.True(t, SMTPConfig{User: "u", Password: "p"}.Configured())
}
