package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hupe1980/eliza/logging"
)

// EnvPrefix prefixes every environment variable, e.g. ELIZA_SERVER_ADDR.
const EnvPrefix = "ELIZA"

// Config is the merged configuration of the eliza command.
type Config struct {
	// Name is the display name of the chatbot. Empty uses the name of the
	// script.
	Name string `mapstructure:"name"`
	// Script is a built-in identity name or a path to a script file.
	Script string       `mapstructure:"script"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Engine EngineConfig `mapstructure:"engine"`
	Model  ModelConfig  `mapstructure:"model"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is debug, info, warn or error. Empty disables logging unless
	// verbosity is requested on the command line.
	Level string `mapstructure:"level"`
	// Format is text, json or console.
	Format string `mapstructure:"format"`
}

// ServerConfig configures the web front-end.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	MaxSessions int    `mapstructure:"max_sessions"`
}

// EngineConfig tunes the chatbots.
type EngineConfig struct {
	MaxRedirects int `mapstructure:"max_redirects"`
	MemoryLimit  int `mapstructure:"memory_limit"`
}

// ModelConfig selects the language model that plays the patient in demo
// mode. An empty Provider keeps the scripted patient.
type ModelConfig struct {
	Provider     string `mapstructure:"provider"`
	Name         string `mapstructure:"name"`
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	Instructions string `mapstructure:"instructions"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"name":         "name",
	"log-format":   "log.format",
	"log-level":    "log.level",
	"addr":         "server.addr",
	"max-sessions": "server.max_sessions",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "")
	v.SetDefault("script", "eliza")
	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_sessions", 1000)
	v.SetDefault("engine.max_redirects", 20)
	v.SetDefault("engine.memory_limit", 0)
	v.SetDefault("model.provider", "")
	v.SetDefault("model.name", "")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.base_url", "")
	v.SetDefault("model.instructions", "")
}

// Load merges defaults, the config file, environment and flags, in
// increasing order of precedence. With an empty path, eliza.yaml is looked
// up in the working directory and $HOME; a missing file is not an error
// then. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("eliza")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
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

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json", "console":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.Model.Provider {
	case "", "openai", "anthropic":
	default:
		return fmt.Errorf("model.provider: unknown provider %q", c.Model.Provider)
	}
	if c.Engine.MaxRedirects < 0 {
		return fmt.Errorf("engine.max_redirects: must not be negative")
	}
	return nil
}

// NewLogger builds the logger for verbosity, the number of -v flags.
// Verbosity 1 logs at info and 2 or more at debug; otherwise Log.Level is
// used, and an empty level yields a logger that discards everything.
func (c LogConfig) NewLogger(verbosity int) (logging.Logger, error) {
	var level logging.LogLevel
	switch {
	case verbosity >= 2:
		level = logging.LogLevelDebug
	case verbosity == 1:
		level = logging.LogLevelInfo
	case c.Level == "":
		return logging.NoOpLogger{}, nil
	default:
		l, err := logging.ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}

	if c.Format == "console" {
		z, err := logging.NewZapConsoleLogger(level)
		if err != nil {
			return nil, err
		}
		return z, nil
	}
	return logging.NewSlogLogger(level, c.Format, false), nil
}
