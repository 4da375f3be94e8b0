package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper-agency/internal/common/pagination"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agency.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		errMsg   string
		validate func(*testing.T, *AppConfig)
	}{
		{
			name: "full file",
			yaml: `
security:
  min_password_length: 12
  weak_passwords: ["hunter2hunter2"]
  token_ttl: 30m
pagination:
  newspapers: 10
http:
  listen_addr: ":9000"
  allowed_origins: ["https://agency.example"]
login_limit:
  per_minute: 10
  burst: 3
`,
			validate: func(t *testing.T, c *AppConfig) {
				assert.Equal(t, 12, c.Security.MinPasswordLength)
				assert.Equal(t, []string{"hunter2hunter2"}, c.Security.WeakPasswords)
				assert.Equal(t, 30*time.Minute, c.Security.TokenTTL)
				assert.Equal(t, pagination.PageSizes{Newspapers: 10, Topics: 4, Redactors: 4}, c.Pagination)
				assert.Equal(t, ":9000", c.HTTP.ListenAddr)
				assert.Equal(t, int64(1<<20), c.HTTP.MaxBodyBytes)
				assert.Equal(t, 3, c.LoginLimit.Burst)
			},
		},
		{
			name: "empty file keeps defaults",
			yaml: "",
			validate: func(t *testing.T, c *AppConfig) {
				assert.Equal(t, Default(), *c)
			},
		},
		{
			name:   "short passwords rejected",
			yaml:   "security:\n  min_password_length: 4\n",
			errMsg: "min_password_length",
		},
		{
			name:   "negative ttl rejected",
			yaml:   "security:\n  token_ttl: -1h\n",
			errMsg: "token_ttl",
		},
		{
			name:   "malformed yaml",
			yaml:   "security: [",
			errMsg: "parse config file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.yaml))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfig(t, "http:\n  listen_addr: \":9000\"\n"))
	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("PAGE_SIZE_TOPICS", "6")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.ListenAddr)
	assert.Equal(t, 2*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, 6, cfg.Pagination.Topics)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
}

func TestPasswordPolicy(t *testing.T) {
	p := Default().Security.PasswordPolicy()
	assert.Equal(t, 8, p.MinLength)
	assert.NotEmpty(t, p.WeakPasswords)
}
