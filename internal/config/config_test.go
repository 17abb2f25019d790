package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "db"
dbname = "taxiclass"
user = "app"

[auriga]
url = "https://provider.example/api/"
client_id = "CLIENT"
client_key = "KEY"

[auth]
jwt_secret = "s3cret"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 20, cfg.Auriga.Timeout)
	assert.Equal(t, "Europe/Madrid", cfg.App.Timezone)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 5, cfg.PersistenceRetry.MaxRetries)
	assert.Equal(t, "CLIENT", cfg.Auriga.ClientID)
	assert.Equal(t, "host=db port=5432 user=app password= dbname=taxiclass sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("AURIGA_CLIENT_KEY", "FROM_ENV")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "FROM_ENV", cfg.Auriga.ClientKey)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
}

func TestLoad_MissingCredentials(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
host = "db"
dbname = "taxiclass"

[auriga]
url = "https://provider.example/api"

[auth]
jwt_secret = "x"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auriga.client_id and auriga.client_key are required")
}

func TestLoad_MailEnabledRequiresHost(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[mail]
enabled = true
host = ""
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail.host")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
