package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"newsfeed/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validConfig() *config.Config {
	cfg := config.New()
	cfg.Database.Username = "news"
	cfg.Database.Password = "secret"
	cfg.App.FeedURLs = []config.FeedURL{{Name: "example", URL: "https://example.com/rss"}}
	return cfg
}

func TestLoad_Success(t *testing.T) {
	path := writeTempConfig(t, `{
		"app": {
			"feed_urls": [{"name": "example", "url": "https://example.com/rss"}],
			"processing_interval": "10m",
			"fetch_timeout": "15s"
		},
		"database": {"username": "news", "password": "from-file"}
	}`)
	t.Setenv(config.PasswordEnv, "")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 10*time.Minute, cfg.App.IntervalDuration())
	assert.Equal(t, 15*time.Second, cfg.App.FetchTimeoutDuration())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeoutDuration())
	assert.Equal(t, "from-file", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_PasswordFromEnv(t *testing.T) {
	path := writeTempConfig(t, `{"database": {"password": "from-file"}}`)
	t.Setenv(config.PasswordEnv, "from-env")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := config.Load("/nonexistent/config.json")
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{ invalid json }`)
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *config.Config) {}},
		{name: "no username", mutate: func(c *config.Config) { c.Database.Username = "" }, wantErr: "username"},
		{name: "no password", mutate: func(c *config.Config) { c.Database.Password = "" }, wantErr: "password"},
		{name: "limit", mutate: func(c *config.Config) { c.App.DefaultNewsLimit = 0 }, wantErr: "default_news_limit"},
		{name: "no feeds", mutate: func(c *config.Config) { c.App.FeedURLs = nil }, wantErr: "feed_urls"},
		{
			name:    "bad url",
			mutate:  func(c *config.Config) { c.App.FeedURLs[0].URL = "not-a-url" },
			wantErr: "invalid url",
		},
		{
			name:    "no feed name",
			mutate:  func(c *config.Config) { c.App.FeedURLs[0].Name = "" },
			wantErr: "feed name",
		},
		{name: "interval", mutate: func(c *config.Config) { c.App.ProcessingInterval = "soon" }, wantErr: "processing_interval"},
		{name: "zero interval", mutate: func(c *config.Config) { c.App.ProcessingInterval = "0s" }, wantErr: "processing_interval"},
		{name: "fetch timeout", mutate: func(c *config.Config) { c.App.FetchTimeout = "-1s" }, wantErr: "fetch_timeout"},
		{name: "request timeout", mutate: func(c *config.Config) { c.App.RequestTimeout = "" }, wantErr: "request_timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	db := config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		Username: "news",
		Password: "p@ss",
		DBName:   "feeds",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://news:p%40ss@db:5433/feeds?sslmode=require", db.DSN())
}
