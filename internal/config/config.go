// Package config loads application configuration from a YAML file,
// environment variables, and .env files, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App    App    `mapstructure:"app"`
	Gemini Gemini `mapstructure:"gemini"`
	Server Server `mapstructure:"server"`
	Ingest Ingest `mapstructure:"ingest"`
	Email  Email  `mapstructure:"email"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// Gemini holds Google Gemini configuration.
type Gemini struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Server holds HTTP server configuration.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Ingest holds mention ingestion configuration.
type Ingest struct {
	Timeout string `mapstructure:"timeout"`
}

// Email holds digest email configuration.
type Email struct {
	FromName string `mapstructure:"from_name"`
	Subject  string `mapstructure:"subject"`
}

// Load reads configuration from the given file (or .mentionpulse.yaml in the
// working directory when empty) plus environment variables. A missing config
// file is fine; defaults apply.
func Load(cfgFile string) (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".mentionpulse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("MENTIONPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".mentionpulse")

	viper.SetDefault("gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("gemini.timeout", "30s")

	viper.SetDefault("server.addr", ":8080")

	viper.SetDefault("ingest.timeout", "20s")

	viper.SetDefault("email.from_name", "MentionPulse")
	viper.SetDefault("email.subject", "Your mention digest")
}

// GeminiTimeout parses the configured Gemini call timeout, falling back to
// 30 seconds on a bad value.
func (c *Config) GeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// IngestTimeout parses the configured feed fetch timeout, falling back to
// 20 seconds on a bad value.
func (c *Config) IngestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Ingest.Timeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}
