// Package config loads application settings from an optional YAML file,
// ELITEPREP_* environment variables and built-in defaults, in that order
// of precedence (environment wins over the file).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/eliteprep/internal/llm"
	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/session"
)

// Config is the complete application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	LLM     llm.Config    `mapstructure:"llm"`
	Log     LogConfig     `mapstructure:"log"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StorageConfig selects where sessions, mistakes and progress are kept.
type StorageConfig struct {
	// Backend is "sqlite", "redis" or "memory".
	Backend string      `mapstructure:"backend"`
	Path    string      `mapstructure:"path"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type LogConfig struct {
	Mode       string `mapstructure:"mode"`
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Options converts the log section for logger.New.
func (c LogConfig) Options() logger.Options {
	return logger.Options{
		Mode:       c.Mode,
		File:       c.File,
		Level:      c.Level,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}

type QuizConfig struct {
	DefaultTopic string        `mapstructure:"default_topic"`
	ExamSize     int           `mapstructure:"exam_size"`
	ExamDuration time.Duration `mapstructure:"exam_duration"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Session converts the quiz section for session.New.
func (c QuizConfig) Session() session.Config {
	return session.Config{
		DefaultTopic: c.DefaultTopic,
		ExamSize:     c.ExamSize,
		ExamDuration: c.ExamDuration,
		TickInterval: c.TickInterval,
	}
}

type MetricsConfig struct {
	// Addr enables the Prometheus endpoint when set, e.g. ":9464".
	Addr string `mapstructure:"addr"`
}

// standardKeys maps provider keys to the variables the vendors document.
var standardKeys = map[string]string{
	"llm.gemini.api_key":     "GEMINI_API_KEY",
	"llm.openai.api_key":     "OPENAI_API_KEY",
	"llm.anthropic.api_key":  "ANTHROPIC_API_KEY",
	"llm.openrouter.api_key": "OPENROUTER_API_KEY",
}

// Load reads configuration. An empty path looks for config.yaml in the
// user config directory and tolerates its absence; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ELITEPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range standardKeys {
		envKey := "ELITEPREP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	if err := v.BindEnv("storage.path", "ELITEPREP_STORAGE_PATH", "ELITEPREP_DB"); err != nil {
		return nil, fmt.Errorf("bind storage.path: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "eliteprep:")

	l := llm.DefaultConfig()
	// Empty lets Resolve pick whichever provider has a key.
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.timeout", l.Timeout)

	v.SetDefault("log.mode", "prod")
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	q := session.DefaultConfig()
	v.SetDefault("quiz.default_topic", q.DefaultTopic)
	v.SetDefault("quiz.exam_size", q.ExamSize)
	v.SetDefault("quiz.exam_duration", q.ExamDuration)
	v.SetDefault("quiz.tick_interval", q.TickInterval)

	v.SetDefault("metrics.addr", "")
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "sqlite", "memory":
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite, redis or memory)", c.Storage.Backend)
	}
	if c.Quiz.ExamSize < 1 {
		return fmt.Errorf("quiz.exam_size must be at least 1, got %d", c.Quiz.ExamSize)
	}
	if c.Quiz.ExamDuration < time.Second {
		return fmt.Errorf("quiz.exam_duration must be at least 1s, got %s", c.Quiz.ExamDuration)
	}
	if c.Quiz.TickInterval <= 0 {
		return fmt.Errorf("quiz.tick_interval must be positive")
	}
	return nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "eliteprep"), nil
}

func defaultLogFile() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "eliteprep", "eliteprep.log")
}
