package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
bot:
  chat_id: -100123456
  keyring_account: "clubbot:telegram"
store:
  path: "records.csv"
  dedup_mode: "content"
harvest:
  cron: "@every 2h"
  tasks:
    - type: jobs
      url: "https://example.edu/careers/feed.rss"
      sub_type: "Full-Time"
resources:
  - name: "Interview prep"
    url: "https://example.edu/prep"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, int64(-100123456), cfg.Bot.ChatID)
	assert.Equal(t, "content", cfg.Store.DedupMode)
	assert.Equal(t, "@every 2h", cfg.Harvest.Cron)
	require.Len(t, cfg.Harvest.Tasks, 1)
	assert.Equal(t, "https://example.edu/careers/feed.rss", cfg.Harvest.Tasks[0].URL)
}

func TestNormalizeAndValidate_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	out, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "errors: %v", res.Errors)

	assert.Equal(t, ".", out.App.DataDir)
	assert.Equal(t, 1.0, out.Harvest.RequestsPerSec)
	assert.Equal(t, 2, out.Harvest.Burst)
	// Task types are normalized to upper case.
	assert.Equal(t, "JOBS", out.Harvest.Tasks[0].Type)
}

func TestNormalizeAndValidate_Errors(t *testing.T) {
	var cfg Config
	cfg.Store.DedupMode = "fuzzy"
	cfg.Harvest.Tasks = []Task{
		{Type: "PODCASTS", URL: "https://example.edu/feed"},
		{Type: "JOBS"},
	}

	out, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	// dedup mode, chat id, bad task type, missing url
	assert.Len(t, res.Errors, 4)
	assert.Empty(t, out.Harvest.Tasks)
}

func TestOverlayEnv(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("CLUBBOT_STORE_PATH", "/data/records.csv")
	t.Setenv("TASK_TYPE", "events")
	t.Setenv("EVENTS_RSS_URL", "https://example.edu/events/feed.rss")

	OverlayEnv(&cfg)

	assert.Equal(t, int64(42), cfg.Bot.ChatID)
	assert.Equal(t, "/data/records.csv", cfg.Store.Path)
	require.Len(t, cfg.Harvest.Tasks, 1)
	assert.Equal(t, "EVENTS", cfg.Harvest.Tasks[0].Type)
	assert.Equal(t, "https://example.edu/events/feed.rss", cfg.Harvest.Tasks[0].URL)
}

func TestOverlayEnv_InvalidChatIDIgnored(t *testing.T) {
	var cfg Config
	cfg.Bot.ChatID = 7
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	OverlayEnv(&cfg)
	assert.Equal(t, int64(7), cfg.Bot.ChatID)
}

func TestEnsureUserConfig_CopiesDefault(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := writeConfig(t, testYAML)

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	got, err := os.ReadFile(userPath)
	require.NoError(t, err)
	assert.Equal(t, testYAML, string(got))
}

func TestEnsureUserConfig_KeepsExistingCopy(t *testing.T) {
	dataDir := t.TempDir()
	existing := filepath.Join(dataDir, "config.yml")
	require.NoError(t, os.WriteFile(existing, []byte("store:\n  path: mine.csv\n"), 0o644))

	userPath, err := EnsureUserConfig(dataDir, writeConfig(t, testYAML))
	require.NoError(t, err)

	got, err := os.ReadFile(userPath)
	require.NoError(t, err)
	assert.Contains(t, string(got), "mine.csv")
}

func TestEnsureUserConfig_MissingDefault(t *testing.T) {
	_, err := EnsureUserConfig(t.TempDir(), filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default config")
}
