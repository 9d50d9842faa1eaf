package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	TelegramToken   string
	VisionBackend   string
	OpenAIAPIKey    string
	OpenAIModel     string
	ClaudeAPIKey    string
	ClaudeModel     string
	OllamaHost      string
	OllamaModel     string
	PerplexityKey   string
	PerplexityModel string
	DBPath          string
	SessionTimeout  time.Duration
	SweepInterval   time.Duration
	LogLevel        string
	LogFile         string
}

func Load() *Config {
	return &Config{
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		VisionBackend:   getEnv("VISION_BACKEND", "stub"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		ClaudeAPIKey:    getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:     getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "moondream"),
		PerplexityKey:   getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityModel: getEnv("PERPLEXITY_MODEL", "llama-3.1-sonar-small-128k-online"),
		DBPath:          getEnv("DB_PATH", "/data/showmyfood.db"),
		SessionTimeout:  getDuration("SESSION_TIMEOUT", 30*time.Minute),
		SweepInterval:   getDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

// Validate checks the settings the bot cannot run without.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	switch c.VisionBackend {
	case "stub", "openai", "claude", "ollama":
	default:
		return fmt.Errorf("unknown VISION_BACKEND %q", c.VisionBackend)
	}
	if c.VisionBackend == "openai" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when VISION_BACKEND=openai")
	}
	if c.VisionBackend == "claude" && c.ClaudeAPIKey == "" {
		return fmt.Errorf("CLAUDE_API_KEY is required when VISION_BACKEND=claude")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
