// internal/config/config.go
//
// Runtime configuration for the game commands.
//
// Sources, lowest to highest precedence:
//  1. Built-in defaults.
//  2. An optional YAML file named by WORDLE_CONFIG (${VAR} references expanded).
//  3. Environment variables, including those loaded from a .env file.
//
// Word length and the attempt budget are game constants and are not
// configurable.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the terminal and HTTP commands.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	WordsFile    string `yaml:"words_file"`    // flat newline-delimited list
	WordsDB      string `yaml:"words_db"`      // SQLite path; takes priority over WordsFile
	Daily        bool   `yaml:"daily"`         // word of the day instead of a random pick
	DailySalt    string `yaml:"daily_salt"`
	Port         string `yaml:"port"`
	JWTSecret    string `yaml:"jwt_secret"` //nolint:gosec // configuration field, not a hardcoded secret
	ClientOrigin string `yaml:"client_origin"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		LogLevel:     "info",
		DailySalt:    "local_dev_salt",
		Port:         "5175",
		JWTSecret:    "dev_secret_change_me",
		ClientOrigin: "http://localhost:5173",
	}
}

// Load reads .env (if present), the optional YAML file, then the environment.
func Load(dotenvPath string) (Config, error) {
	if err := loadDotEnv(dotenvPath); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", dotenvPath, err)
	}

	cfg := Defaults()
	if path := os.Getenv("WORDLE_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-provided configuration
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.WordsFile, "WORDS_FILE")
	setString(&c.WordsDB, "WORDS_DB")
	setString(&c.DailySalt, "DAILY_SALT")
	setString(&c.Port, "PORT")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.ClientOrigin, "CLIENT_ORIGIN")
	if v := os.Getenv("DAILY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: DAILY=%q: %w", v, err)
		}
		c.Daily = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
