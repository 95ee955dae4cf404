// Package config loads process configuration from the environment once at
// startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP        HTTPConfig
	DatabaseURL string
	RedisAddr   string
	Session     SessionConfig
	Limiter     LimiterConfig
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type SessionConfig struct {
	// Secret signs the anti-forgery token issued alongside the session.
	Secret string
	// TTL is the session lifetime, slid forward on sign-in reissue.
	TTL time.Duration
	// SecureCookies controls the Secure flag on issued cookies.
	SecureCookies bool
}

type LimiterConfig struct {
	Window   time.Duration
	MaxFails int
	BlockFor time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SEC", 10)) * time.Second,
			WriteTimeout:    time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SEC", 15)) * time.Second,
			ShutdownTimeout: time.Duration(getEnvInt("HTTP_SHUTDOWN_TIMEOUT_SEC", 20)) * time.Second,
		},
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisAddr:   getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", ""),
			TTL:           time.Duration(getEnvInt("SESSION_TTL_SEC", 7*24*60*60)) * time.Second,
			SecureCookies: getEnvBool("SESSION_SECURE_COOKIES", true),
		},
		Limiter: LimiterConfig{
			Window:   time.Duration(getEnvInt("SIGNIN_LIMIT_WINDOW_SEC", 900)) * time.Second,
			MaxFails: getEnvInt("SIGNIN_LIMIT_MAX_FAILS", 5),
			BlockFor: time.Duration(getEnvInt("SIGNIN_LIMIT_BLOCK_SEC", 900)) * time.Second,
		},
	}

	if cfg.HTTP.Addr == "" {
		return Config{}, fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR must not be empty")
	}
	if cfg.Session.Secret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.Session.TTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL_SEC must be > 0")
	}
	if cfg.Limiter.MaxFails <= 0 {
		return Config{}, fmt.Errorf("SIGNIN_LIMIT_MAX_FAILS must be > 0")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
