// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	AdminKeySalt string

	GeminiAPIKey string
	GeminiModel  string
	ChatTimeout  time.Duration

	LiveInterval     time.Duration
	LiveTickProb     float64
	LiveMaxIncrement int

	SeedSample bool
}

// ParseFlags builds the configuration from CLI flags with environment
// fallback. A .env file in the working directory is loaded first when
// present.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; system env vars still apply.
	_ = godotenv.Load()

	var cfg Config
	var intervalMs, chatTimeoutS int

	fs := flag.NewFlagSet("votoflow", flag.ContinueOnError)

	// Network and storage (CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.GeminiAPIKey, "gemini-key", "", "Gemini API key (prefer env)")

	// Assistant and live-stream tuning
	fs.StringVar(&cfg.GeminiModel, "gemini-model", "", "Gemini model name")
	fs.IntVar(&chatTimeoutS, "chat-timeout", 0, "Assistant request timeout in seconds")
	fs.IntVar(&intervalMs, "live-interval", 0, "Live stream tick interval in ms")
	fs.Float64Var(&cfg.LiveTickProb, "live-prob", 0, "Per-location tick probability")
	fs.IntVar(&cfg.LiveMaxIncrement, "live-max-inc", 0, "Max votes added per tick")
	fs.BoolVar(&cfg.SeedSample, "seed-sample", false, "Seed the embedded demo dataset on start")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Track which flags were passed explicitly, so a deliberate zero
	// (e.g. -live-prob 0) is not mistaken for "unset" and defaulted.
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// Fall back to environment variables
	if !explicit["p"] {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	// The assistant is optional: without a key the chat endpoint serves
	// fallback transcripts only.
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-flash"
	}

	if !explicit["chat-timeout"] {
		chatTimeoutS = envInt("CHAT_TIMEOUT_S", 30)
	}
	if chatTimeoutS < 1 {
		return Config{}, errors.New("chat timeout must be positive")
	}
	cfg.ChatTimeout = time.Duration(chatTimeoutS) * time.Second

	if !explicit["live-interval"] {
		intervalMs = envInt("LIVE_INTERVAL_MS", 3000)
	}
	if intervalMs < 1 {
		return Config{}, errors.New("live interval must be positive")
	}
	cfg.LiveInterval = time.Duration(intervalMs) * time.Millisecond

	if !explicit["live-prob"] {
		cfg.LiveTickProb = envFloat("LIVE_TICK_PROB", 0.3)
	}
	if cfg.LiveTickProb < 0 || cfg.LiveTickProb > 1 {
		return Config{}, errors.New("live tick probability must be in [0,1]")
	}

	if !explicit["live-max-inc"] {
		cfg.LiveMaxIncrement = envInt("LIVE_MAX_INCREMENT", 40)
	}
	if cfg.LiveMaxIncrement < 1 {
		return Config{}, errors.New("live max increment must be positive")
	}

	if !cfg.SeedSample {
		cfg.SeedSample = os.Getenv("SEED_SAMPLE") == "true"
	}

	return cfg, nil
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}
