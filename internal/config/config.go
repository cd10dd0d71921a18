package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"bidtab/internal/domain"
)

// Config holds all application configuration. It is constructed once at
// process start and passed by reference; core logic never reads the
// environment directly.
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Extract ExtractConfig
	Log     LogConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LLMConfig holds settings for the chat-completion model gateway.
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
}

// Validate reports whether the gateway has the credentials it needs. Checked
// before any model call so misconfiguration surfaces as a single clear error.
func (l *LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" ||
		strings.TrimSpace(l.BaseURL) == "" ||
		strings.TrimSpace(l.Model) == "" {
		return domain.ErrLLMNotConfigured
	}
	return nil
}

// ExtractConfig holds document ingestion and keyword filter settings.
type ExtractConfig struct {
	DisableKeywordFilter bool `mapstructure:"disable_keyword_filter"`
	WindowLines          int  `mapstructure:"window_lines"`
	MaxContextChars      int  `mapstructure:"max_context_chars"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the BIDTAB_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIDTAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15m")
	v.SetDefault("server.environment", "development")

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_tokens", 4000)
	v.SetDefault("llm.timeout_secs", 600)

	// Extraction defaults
	v.SetDefault("extract.disable_keyword_filter", false)
	v.SetDefault("extract.window_lines", 4)
	v.SetDefault("extract.max_context_chars", 60000)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "BIDTAB_SERVER_PORT",
		"server.read_timeout":            "BIDTAB_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "BIDTAB_SERVER_WRITE_TIMEOUT",
		"server.environment":             "BIDTAB_SERVER_ENVIRONMENT",
		"llm.api_key":                    "BIDTAB_LLM_API_KEY",
		"llm.base_url":                   "BIDTAB_LLM_BASE_URL",
		"llm.model":                      "BIDTAB_LLM_MODEL",
		"llm.temperature":                "BIDTAB_LLM_TEMPERATURE",
		"llm.max_tokens":                 "BIDTAB_LLM_MAX_TOKENS",
		"llm.timeout_secs":               "BIDTAB_LLM_TIMEOUT_SECS",
		"extract.disable_keyword_filter": "BIDTAB_EXTRACT_DISABLE_KEYWORD_FILTER",
		"extract.window_lines":           "BIDTAB_EXTRACT_WINDOW_LINES",
		"extract.max_context_chars":      "BIDTAB_EXTRACT_MAX_CONTEXT_CHARS",
		"log.level":                      "BIDTAB_LOG_LEVEL",
		"log.format":                     "BIDTAB_LOG_FORMAT",
		"cors.allowed_origins":           "BIDTAB_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BIDTAB_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BIDTAB_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.LLM = LLMConfig{
		APIKey:      v.GetString("llm.api_key"),
		BaseURL:     v.GetString("llm.base_url"),
		Model:       v.GetString("llm.model"),
		Temperature: v.GetFloat64("llm.temperature"),
		MaxTokens:   v.GetInt("llm.max_tokens"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
	}
	cfg.Extract = ExtractConfig{
		DisableKeywordFilter: v.GetBool("extract.disable_keyword_filter"),
		WindowLines:          v.GetInt("extract.window_lines"),
		MaxContextChars:      v.GetInt("extract.max_context_chars"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
