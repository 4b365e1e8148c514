package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/launchforge/launchwizard-backend/internal/logger"
	"github.com/launchforge/launchwizard-backend/internal/utils"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	RedisAddr       string
	RateLimitWindow time.Duration
	RateLimitMax    int64
	AllowOrigins    []string
}

// fileConfig is the optional YAML overlay; anything set here wins over the
// environment. CONFIG_FILE points at it.
type fileConfig struct {
	Port      string `yaml:"port"`
	JWTSecret string `yaml:"jwt_secret"`
	RedisAddr string `yaml:"redis_addr"`
	RateLimit struct {
		WindowSeconds int   `yaml:"window_seconds"`
		MaxRequests   int64 `yaml:"max_requests"`
	} `yaml:"rate_limit"`
	AllowOrigins []string `yaml:"allow_origins"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	rateLimitWindowSeconds := utils.GetEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60, log)
	rateLimitMax := utils.GetEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 120, log)

	cfg := Config{
		Port:            port,
		JWTSecretKey:    jwtSecretKey,
		RedisAddr:       redisAddr,
		RateLimitWindow: time.Duration(rateLimitWindowSeconds) * time.Second,
		RateLimitMax:    int64(rateLimitMax),
	}

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("read config file %s: %w", configPath, err)
	}
	var overlay fileConfig
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", configPath, err)
	}

	if overlay.Port != "" {
		cfg.Port = overlay.Port
	}
	if overlay.JWTSecret != "" {
		cfg.JWTSecretKey = overlay.JWTSecret
	}
	if overlay.RedisAddr != "" {
		cfg.RedisAddr = overlay.RedisAddr
	}
	if overlay.RateLimit.WindowSeconds > 0 {
		cfg.RateLimitWindow = time.Duration(overlay.RateLimit.WindowSeconds) * time.Second
	}
	if overlay.RateLimit.MaxRequests > 0 {
		cfg.RateLimitMax = overlay.RateLimit.MaxRequests
	}
	if len(overlay.AllowOrigins) > 0 {
		cfg.AllowOrigins = overlay.AllowOrigins
	}

	log.Info("Configuration loaded", "config_file", configPath)
	return cfg, nil
}
