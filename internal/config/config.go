// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings.
type Config struct {
	Provider         string
	APIKey           string
	BaseURL          string
	ChatModel        string
	EmotionModel     string
	MemoryModel      string
	StructuredOutput bool
	Temperature      *float32
	CallTimeout      time.Duration
	DatabaseURL      string
	StorePath        string
	WorkDir          string
	LogLevel         string
}

// providerKeys lists the provider-specific key used when LLM_API_KEY is unset.
var providerKeys = map[string]string{
	"openrouter": "OPENROUTER_API_KEY",
	"grok":       "XAI_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"gemini":     "GOOGLE_API_KEY",
}

var defaultModels = map[string]string{
	"openrouter": "openchat/openchat-7b",
	"grok":       "grok-4-fast",
	"openai":     "gpt-4o-mini",
	"gemini":     "gemini-2.5-flash",
}

// Load reads env vars, applies defaults, and validates required fields.
func Load() Config {
	cfg, err := load(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Parse is Load without the fatal exit, for commands that report problems.
func Parse() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Provider:     strings.ToLower(strings.TrimSpace(getenv("LLM_PROVIDER"))),
		APIKey:       getenv("LLM_API_KEY"),
		BaseURL:      getenv("LLM_BASE_URL"),
		ChatModel:    getenv("CHAT_MODEL"),
		EmotionModel: getenv("EMOTION_MODEL"),
		MemoryModel:  getenv("MEMORY_MODEL"),
		DatabaseURL:  getenv("DATABASE_URL"),
		StorePath:    getenv("STORE_PATH"),
		WorkDir:      getenv("WORK_DIR"),
		LogLevel:     getenv("LOG_LEVEL"),
	}

	cfg.StructuredOutput = getEnvBool(getenv, "STRUCTURED_OUTPUT", false)
	cfg.CallTimeout = getEnvDuration(getenv, "CALL_TIMEOUT", 30*time.Second)
	if t := getEnvFloat(getenv, "TEMPERATURE", -1); t >= 0 {
		parsed := float32(t)
		cfg.Temperature = &parsed
	}

	if cfg.Provider == "" {
		cfg.Provider = "openrouter"
	}
	keyVar, ok := providerKeys[cfg.Provider]
	if !ok {
		return Config{}, fmt.Errorf("LLM_PROVIDER %q is not supported (openrouter, grok, openai, gemini)", cfg.Provider)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = getenv(keyVar)
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("LLM_API_KEY or %s environment variable is required", keyVar)
	}

	defaultModel := defaultModels[cfg.Provider]
	if cfg.ChatModel == "" {
		cfg.ChatModel = defaultModel
	}
	if cfg.EmotionModel == "" {
		cfg.EmotionModel = defaultModel
	}
	if cfg.MemoryModel == "" {
		cfg.MemoryModel = defaultModel
	}

	if cfg.WorkDir == "" {
		cfg.WorkDir, _ = os.Getwd()
	}
	if cfg.StorePath == "" {
		cfg.StorePath = filepath.Join(cfg.WorkDir, "zizi.db")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func getEnvInt(getenv func(string) string, key string, defaultVal int) int {
	if val := getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(getenv func(string) string, key string, defaultVal float64) float64 {
	if val := getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvBool(getenv func(string) string, key string, defaultVal bool) bool {
	if val := getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvDuration(getenv func(string) string, key string, defaultVal time.Duration) time.Duration {
	val := getenv(key)
	if val == "" {
		return defaultVal
	}
	if parsed, err := time.ParseDuration(val); err == nil && parsed > 0 {
		return parsed
	}
	if secs := getEnvInt(getenv, key, 0); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
