package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
http_server:
  address: ":8080"
jwt:
  secret_key: "s3cret"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "mongo", cfg.DB.Driver)
	assert.Equal(t, "question_answering", cfg.DB.Name)
	assert.Equal(t, 10*time.Second, cfg.DB.Timeout)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, time.Hour, cfg.JWT.CookieTTL)
	assert.False(t, cfg.JWT.AllowHeaderToken)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
http_server:
  address: ":8080"
`)

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "from-env")
	t.Setenv("ENV", "prod")

	path := writeConfig(t, `
http_server:
  address: ":8080"
jwt:
  ttl: 30m
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	path := writeConfig(t, `
db:
  driver: "postgres"
http_server:
  address: ":8080"
jwt:
  secret_key: "k"
`)

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestMustLoadConfig_MissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
