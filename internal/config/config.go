package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application settings outside the LLM provider layer.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Interview InterviewConfig `mapstructure:"interview"`
	Questions QuestionsConfig `mapstructure:"questions"`
	Salary    SalaryConfig    `mapstructure:"salary"`
	DB        DBConfig        `mapstructure:"db"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// InterviewConfig holds session defaults applied when a start request leaves
// a field unset.
type InterviewConfig struct {
	DefaultCount       int `mapstructure:"default-count"`
	DefaultSeconds     int `mapstructure:"default-seconds"`
	MaxCount           int `mapstructure:"max-count"`
	OracleTimeoutSecs  int `mapstructure:"oracle-timeout-seconds"`
	SessionIdleMinutes int `mapstructure:"session-idle-minutes"`
}

// QuestionsConfig selects where interview questions come from.
type QuestionsConfig struct {
	// Path overrides the embedded question bank with an on-disk JSON file.
	Path string `mapstructure:"path"`
	// Generate enables LLM-backed question generation, with the bank as
	// fallback.
	Generate bool `mapstructure:"generate"`
}

// SalaryConfig configures the salary estimator surface.
type SalaryConfig struct {
	DefaultCountry string `mapstructure:"default-country"`
}

// DBConfig locates the profile store.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

const envPrefix = "PREPDECK"

// Load reads configuration from the environment (PREPDECK_* variables, with
// a .env file honoured when present), an optional YAML file, and built-in
// defaults, in that order of precedence from highest to lowest: env wins
// over file values, file values win over defaults.
func Load(cfgFile string) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("prepdeck")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DB.Path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DB.Path = p
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown-timeout", 5*time.Second)

	v.SetDefault("interview.default-count", 5)
	v.SetDefault("interview.default-seconds", 120)
	v.SetDefault("interview.max-count", 20)
	v.SetDefault("interview.oracle-timeout-seconds", 30)
	v.SetDefault("interview.session-idle-minutes", 60)

	v.SetDefault("salary.default-country", "IN")
	v.SetDefault("questions.generate", false)
}

// DefaultDBPath resolves the profile database path in priority order:
// PREPDECK_DB env var, $XDG_DATA_HOME/prepdeck/prepdeck.db, then
// ~/.local/share/prepdeck/prepdeck.db.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PREPDECK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "prepdeck", "prepdeck.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
