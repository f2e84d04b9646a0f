// internal/config/config.go

// Package config loads settings for both the terminal client and the
// server. Precedence, lowest first: defaults, YAML file, .env, environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/words"
)

// Config holds all application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Words   WordsConfig   `yaml:"words"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// GameConfig holds game rules.
type GameConfig struct {
	// Scoring is "membership" (default) or "standard".
	Scoring string `yaml:"scoring"`
}

// WordsConfig configures the word source.
type WordsConfig struct {
	URL         string        `yaml:"url"`
	Timeout     time.Duration `yaml:"timeout"`
	Retries     int           `yaml:"retries"`
	AnswersFile string        `yaml:"answers_file"` // replaces the bundled list
	DailySalt   string        `yaml:"daily_salt"`
}

// ServerConfig holds serve-command settings.
type ServerConfig struct {
	Port         string        `yaml:"port"`
	ClientOrigin string        `yaml:"client_origin"`
	DatabasePath string        `yaml:"database_path"`
	WatchFile    string        `yaml:"watch_file"` // merged into the catalog on change
	SessionTTL   time.Duration `yaml:"session_ttl"`
	// AdminPasswordHash is a bcrypt hash; empty disables catalog writes.
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	JWTSecret         string        `yaml:"jwt_secret"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // play writes here since the terminal is taken
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Game: GameConfig{Scoring: string(game.ScoringMembership)},
		Words: WordsConfig{
			URL:       words.DefaultURL,
			Timeout:   5 * time.Second,
			Retries:   1,
			DailySalt: "local_dev_salt",
		},
		Server: ServerConfig{
			Port:         "5175",
			ClientOrigin: "http://localhost:5173",
			DatabasePath: "./data/words.db",
			SessionTTL:   24 * time.Hour,
			JWTSecret:    "dev_secret_change_me",
			TokenTTL:     time.Hour,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads .env (if present), the optional YAML file at path, then
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables.
func (c *Config) applyEnv() {
	c.Game.Scoring = getEnv("GAME_SCORING", c.Game.Scoring)

	c.Words.URL = getEnv("WORDS_URL", c.Words.URL)
	c.Words.Timeout = getEnvDuration("WORDS_TIMEOUT", c.Words.Timeout)
	c.Words.Retries = getEnvInt("WORDS_RETRIES", c.Words.Retries)
	c.Words.AnswersFile = getEnv("WORDS_ANSWERS_FILE", c.Words.AnswersFile)
	c.Words.DailySalt = getEnv("DAILY_SALT", c.Words.DailySalt)

	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ClientOrigin = getEnv("CLIENT_ORIGIN", c.Server.ClientOrigin)
	c.Server.DatabasePath = getEnv("DATABASE_PATH", c.Server.DatabasePath)
	c.Server.WatchFile = getEnv("WORDS_WATCH_FILE", c.Server.WatchFile)
	c.Server.SessionTTL = getEnvDuration("SESSION_TTL", c.Server.SessionTTL)
	c.Server.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", c.Server.AdminPasswordHash)
	c.Server.JWTSecret = getEnv("JWT_SECRET", c.Server.JWTSecret)
	c.Server.TokenTTL = getEnvDuration("JWT_TTL", c.Server.TokenTTL)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.File = getEnv("LOG_FILE", c.Logging.File)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := game.ParseScoring(c.Game.Scoring); err != nil {
		return fmt.Errorf("game.scoring %q: %w", c.Game.Scoring, err)
	}
	if c.Words.URL == "" {
		return fmt.Errorf("words.url is required")
	}
	if c.Words.Retries < 0 {
		return fmt.Errorf("words.retries must not be negative")
	}
	if c.Words.Timeout < 0 {
		return fmt.Errorf("words.timeout must not be negative")
	}
	if c.Server.TokenTTL <= 0 {
		return fmt.Errorf("server.token_ttl must be positive")
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive")
	}
	return nil
}

// Scoring returns the parsed scoring mode. Validate has already run.
func (c *Config) Scoring() game.Scoring {
	s, _ := game.ParseScoring(c.Game.Scoring)
	return s
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
