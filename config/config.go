package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Context store drivers
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Engine kinds
const (
	EngineLLM    = "llm"
	EngineVector = "vector"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Channels
	Telegram TelegramConfig
	Webhook  WebhookConfig

	// Recognition pipeline
	Recognizer   RecognizerConfig
	Dialog       DialogConfig
	ContextStore ContextStoreConfig
	Engine       EngineConfig

	// Engine backends
	LLM    LLMConfig
	Voyage VoyageConfig
	Qdrant QdrantConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
	// AdminToken guards the conversation context read API; empty disables it.
	AdminToken string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken    string
	WebhookURL  string
	SecretToken string
}

type WebhookConfig struct {
	RateLimitPerMin int
	AllowedIPs      []string
}

// RecognizerConfig configures intent acceptance and routing.
type RecognizerConfig struct {
	Threshold     float64
	DefaultLocale string
	Routing       RoutingConfig
}

type RoutingConfig struct {
	Activate  bool
	Threshold float64
}

// DialogConfig bounds the dialog stacks kept by the chat host.
type DialogConfig struct {
	StateTTL  time.Duration
	StateSize int
}

type ContextStoreConfig struct {
	Driver string
	TTL    time.Duration
	Size   int
	Redis  RedisConfig
	SQLite SQLiteConfig
}

type RedisConfig struct {
	URL       string
	KeyPrefix string
}

type SQLiteConfig struct {
	Path string
}

type EngineConfig struct {
	Kind      string
	ModelPath string
	Breaker   BreakerConfig
}

type BreakerConfig struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")
	return load(v)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.AdminToken = v.GetString("http_server.admin_token")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = v.GetString("telegram.secret_token")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	if tgSecret := v.GetString("telegram_secret_token"); tgSecret != "" {
		cfg.Telegram.SecretToken = tgSecret
	}

	// Webhooks
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")
	// A YAML list or a comma-separated env value.
	var ips []string
	for _, raw := range v.GetStringSlice("webhook.allowed_ips") {
		for _, ip := range strings.Split(raw, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Webhook.AllowedIPs = ips

	// Recognizer
	cfg.Recognizer.Threshold = v.GetFloat64("recognizer.threshold")
	cfg.Recognizer.DefaultLocale = v.GetString("recognizer.default_locale")
	cfg.Recognizer.Routing.Activate = v.GetBool("recognizer.routing.activate")
	cfg.Recognizer.Routing.Threshold = v.GetFloat64("recognizer.routing.threshold")

	cfg.Dialog.StateTTL = v.GetDuration("dialog.state_ttl")
	cfg.Dialog.StateSize = v.GetInt("dialog.state_size")

	// Context store
	cfg.ContextStore.Driver = strings.ToLower(v.GetString("context_store.driver"))
	cfg.ContextStore.TTL = v.GetDuration("context_store.ttl")
	cfg.ContextStore.Size = v.GetInt("context_store.size")
	cfg.ContextStore.Redis.URL = v.GetString("context_store.redis.url")
	cfg.ContextStore.Redis.KeyPrefix = v.GetString("context_store.redis.key_prefix")
	cfg.ContextStore.SQLite.Path = v.GetString("context_store.sqlite.path")
	if redisURL := v.GetString("redis_url"); redisURL != "" {
		cfg.ContextStore.Redis.URL = redisURL
	}

	// Engine
	cfg.Engine.Kind = strings.ToLower(v.GetString("engine.kind"))
	cfg.Engine.ModelPath = v.GetString("engine.model_path")
	cfg.Engine.Breaker.Enabled = v.GetBool("engine.breaker.enabled")
	cfg.Engine.Breaker.MaxRequests = v.GetUint32("engine.breaker.max_requests")
	cfg.Engine.Breaker.Interval = v.GetDuration("engine.breaker.interval")
	cfg.Engine.Breaker.Timeout = v.GetDuration("engine.breaker.timeout")
	cfg.Engine.Breaker.MinRequests = v.GetUint32("engine.breaker.min_requests")
	cfg.Engine.Breaker.FailureRatio = v.GetFloat64("engine.breaker.failure_ratio")

	// Voyage AI
	cfg.Voyage.APIKey = v.GetString("voyage.api_key")
	cfg.Voyage.Model = v.GetString("voyage.model")
	if voyageKey := v.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// Qdrant
	cfg.Qdrant.URL = v.GetString("qdrant.url")
	cfg.Qdrant.APIKey = v.GetString("qdrant.api_key")
	cfg.Qdrant.CollectionName = v.GetString("qdrant.collection_name")
	if qdrantURL := v.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")

	// Load provider configurations
	if v.IsSet("llm.providers") {
		providersRaw := v.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("webhook.rate_limit_per_min", 60)

	v.SetDefault("recognizer.threshold", 0.7)
	v.SetDefault("recognizer.default_locale", "en")
	v.SetDefault("recognizer.routing.activate", true)
	v.SetDefault("recognizer.routing.threshold", 0.7)
	v.SetDefault("dialog.state_ttl", "24h")
	v.SetDefault("dialog.state_size", 10000)

	v.SetDefault("context_store.driver", DriverMemory)
	v.SetDefault("context_store.ttl", "24h")
	v.SetDefault("context_store.size", 10000)
	v.SetDefault("context_store.redis.key_prefix", "nlu:context:")
	v.SetDefault("context_store.sqlite.path", "data/contexts.db")

	v.SetDefault("engine.kind", EngineLLM)
	v.SetDefault("engine.model_path", "model.yaml")
	v.SetDefault("engine.breaker.enabled", true)
	v.SetDefault("engine.breaker.max_requests", 3)
	v.SetDefault("engine.breaker.interval", "1m")
	v.SetDefault("engine.breaker.timeout", "30s")
	v.SetDefault("engine.breaker.min_requests", 3)
	v.SetDefault("engine.breaker.failure_ratio", 0.6)

	v.SetDefault("qdrant.url", "http://localhost:6333")
	v.SetDefault("qdrant.collection_name", "nlu_utterances")

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s") // Default: 60 seconds for entire fallback chain
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Recognizer.Threshold < 0 || c.Recognizer.Threshold > 1 {
		return fmt.Errorf("recognizer.threshold must be within [0,1], got %v", c.Recognizer.Threshold)
	}
	if c.Recognizer.Routing.Threshold < 0 || c.Recognizer.Routing.Threshold > 1 {
		return fmt.Errorf("recognizer.routing.threshold must be within [0,1], got %v", c.Recognizer.Routing.Threshold)
	}

	switch c.ContextStore.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.ContextStore.Redis.URL == "" {
			return fmt.Errorf("context_store.redis.url is required for the redis driver")
		}
	case DriverSQLite:
		if c.ContextStore.SQLite.Path == "" {
			return fmt.Errorf("context_store.sqlite.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown context_store.driver %q", c.ContextStore.Driver)
	}

	switch c.Engine.Kind {
	case EngineLLM:
		if err := validateLLMConfig(&c.LLM); err != nil {
			return err
		}
	case EngineVector:
		if c.Voyage.APIKey == "" {
			return fmt.Errorf("voyage.api_key is required for the vector engine")
		}
		if c.Qdrant.URL == "" {
			return fmt.Errorf("qdrant.url is required for the vector engine")
		}
	default:
		return fmt.Errorf("unknown engine.kind %q", c.Engine.Kind)
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			// Check priority is valid
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			// Check for duplicate priorities
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
