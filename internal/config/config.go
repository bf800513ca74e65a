package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	UploadDir      string
	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	CourseCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EUNOIA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Eunoia API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3001")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("llm.base_url", "https://open.bigmodel.cn/api/paas/v4")
	v.SetDefault("llm.model", "glm-4.5-flash")
	v.SetDefault("course.cache_ttl", "5m")

	ttlString := v.GetString("course.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid course cache ttl: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		JWTSecret:      v.GetString("jwt.secret"),
		UploadDir:      v.GetString("upload.dir"),
		LLMAPIKey:      v.GetString("llm.api_key"),
		LLMBaseURL:     v.GetString("llm.base_url"),
		LLMModel:       v.GetString("llm.model"),
		CourseCacheTTL: ttl,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
