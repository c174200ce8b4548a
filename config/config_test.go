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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const llmProviders = `
llm:
  providers:
    - name: gemini
      enabled: true
      priority: 1
      api_key: ${TEST_GEMINI_KEY}
      model: gemini-2.0-flash
      timeout: 20s
    - name: deepseek
      enabled: false
      priority: 2
      model: deepseek-chat
`

func TestLoadFile_Defaults(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "secret")
	cfg, err := LoadFile(writeConfig(t, llmProviders))
	require.NoError(t, err)

	assert.Equal(t, 0.7, cfg.Recognizer.Threshold)
	assert.True(t, cfg.Recognizer.Routing.Activate)
	assert.Equal(t, 0.7, cfg.Recognizer.Routing.Threshold)
	assert.Equal(t, DriverMemory, cfg.ContextStore.Driver)
	assert.Equal(t, 24*time.Hour, cfg.ContextStore.TTL)
	assert.Equal(t, EngineLLM, cfg.Engine.Kind)
	assert.Equal(t, 30*time.Second, cfg.Engine.Breaker.Timeout)
	assert.Equal(t, uint32(3), cfg.Engine.Breaker.MaxRequests)

	require.Len(t, cfg.LLM.Providers, 2)
	assert.Equal(t, "secret", cfg.LLM.Providers[0].APIKey)
	assert.Equal(t, 1, cfg.LLM.Providers[0].Priority)
	assert.False(t, cfg.LLM.Providers[1].Enabled)
}

func TestLoadFile_Overrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg-token")
	cfg, err := LoadFile(writeConfig(t, `
recognizer:
  threshold: 0.5
  routing:
    activate: false
context_store:
  driver: redis
  ttl: 1h
engine:
  kind: vector
voyage:
  api_key: vk
`))
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Recognizer.Threshold)
	assert.False(t, cfg.Recognizer.Routing.Activate)
	assert.Equal(t, DriverRedis, cfg.ContextStore.Driver)
	assert.Equal(t, "redis://cache:6379/1", cfg.ContextStore.Redis.URL)
	assert.Equal(t, time.Hour, cfg.ContextStore.TTL)
	assert.Equal(t, "tg-token", cfg.Telegram.BotToken)
	assert.Equal(t, EngineVector, cfg.Engine.Kind)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Recognizer:   RecognizerConfig{Threshold: 0.7, Routing: RoutingConfig{Threshold: 0.7}},
			ContextStore: ContextStoreConfig{Driver: DriverMemory},
			Engine:       EngineConfig{Kind: EngineVector},
			Voyage:       VoyageConfig{APIKey: "k"},
			Qdrant:       QdrantConfig{URL: "http://q"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "threshold above one", mutate: func(c *Config) { c.Recognizer.Threshold = 1.1 }},
		{name: "negative routing threshold", mutate: func(c *Config) { c.Recognizer.Routing.Threshold = -0.1 }},
		{name: "unknown driver", mutate: func(c *Config) { c.ContextStore.Driver = "mongo" }},
		{name: "redis without url", mutate: func(c *Config) { c.ContextStore.Driver = DriverRedis }},
		{name: "unknown engine", mutate: func(c *Config) { c.Engine.Kind = "regex" }},
		{name: "vector without voyage key", mutate: func(c *Config) { c.Voyage.APIKey = "" }},
		{name: "llm without providers", mutate: func(c *Config) { c.Engine.Kind = EngineLLM }},
		{name: "duplicate priority", mutate: func(c *Config) {
			c.Engine.Kind = EngineLLM
			c.LLM.Providers = []ProviderConfig{
				{Name: "a", Model: "m", Enabled: true, Priority: 1},
				{Name: "b", Model: "m", Enabled: true, Priority: 1},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadFile_AllowedIPs(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "secret")
	cfg, err := LoadFile(writeConfig(t, llmProviders+`
webhook:
  allowed_ips:
    - 149.154.160.0/20
    - 91.108.4.0/22
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"149.154.160.0/20", "91.108.4.0/22"}, cfg.Webhook.AllowedIPs)

	t.Setenv("WEBHOOK_ALLOWED_IPS", "10.0.0.1,10.0.0.2")
	cfg, err = LoadFile(writeConfig(t, llmProviders))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Webhook.AllowedIPs)
}

func TestLoadFile_AdminToken(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY", "secret")
	cfg, err := LoadFile(writeConfig(t, llmProviders))
	require.NoError(t, err)
	assert.Empty(t, cfg.HTTPServer.AdminToken)

	t.Setenv("HTTP_SERVER_ADMIN_TOKEN", "adm1n")
	cfg, err = LoadFile(writeConfig(t, llmProviders))
	require.NoError(t, err)
	assert.Equal(t, "adm1n", cfg.HTTPServer.AdminToken)
}
