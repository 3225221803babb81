package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g. ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" switches gin to release mode

	// Pipeline
	Generator           string `mapstructure:"GENERATOR"` // heuristic, remote, openai or gemini
	FallbackToHeuristic bool   `mapstructure:"FALLBACK_TO_HEURISTIC"`
	MaxPromptLength     int    `mapstructure:"MAX_PROMPT_LENGTH"`
	MaxFeatures         int    `mapstructure:"MAX_FEATURES"`

	// Sanitizer
	Sanitize           bool   `mapstructure:"SANITIZE"`
	AllowExternalLinks bool   `mapstructure:"ALLOW_EXTERNAL_LINKS"`
	AllowedDomains     string `mapstructure:"ALLOWED_DOMAINS"` // comma separated
	MaxURLLength       int    `mapstructure:"MAX_URL_LENGTH"`

	// Remote generation service
	RemoteEndpoint   string        `mapstructure:"REMOTE_ENDPOINT"`
	RemoteAPIKey     string        `mapstructure:"REMOTE_API_KEY"`
	RemoteSchema     string        `mapstructure:"REMOTE_SCHEMA"`
	RemoteTimeout    time.Duration `mapstructure:"REMOTE_TIMEOUT"`
	RemoteMaxRetries int           `mapstructure:"REMOTE_MAX_RETRIES"`
	RemoteRetryDelay time.Duration `mapstructure:"REMOTE_RETRY_DELAY"`

	// Model providers
	OpenAIKey    string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Webhook ingestion
	WebhookSecret string        `mapstructure:"WEBHOOK_SECRET"`
	ReplayWindow  time.Duration `mapstructure:"REPLAY_WINDOW"`

	// Storage
	DatabaseURL string `mapstructure:"DATABASE_URL"` // Postgres; empty means file storage
	OutputDir   string `mapstructure:"OUTPUT_DIR"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":        ":8080",
	"APP_ENV":               "development",
	"GENERATOR":             "heuristic",
	"FALLBACK_TO_HEURISTIC": true,
	"MAX_PROMPT_LENGTH":     2000,
	"MAX_FEATURES":          3,
	"SANITIZE":              true,
	"ALLOW_EXTERNAL_LINKS":  true,
	"ALLOWED_DOMAINS":       "",
	"MAX_URL_LENGTH":        2048,
	"REMOTE_ENDPOINT":       "",
	"REMOTE_API_KEY":        "",
	"REMOTE_SCHEMA":         "site-configuration/v1",
	"REMOTE_TIMEOUT":        30 * time.Second,
	"REMOTE_MAX_RETRIES":    2,
	"REMOTE_RETRY_DELAY":    time.Second,
	"OPENAI_API_KEY":        "",
	"OPENAI_MODEL":          "gpt-4o",
	"GEMINI_API_KEY":        "",
	"GEMINI_MODEL":          "gemini-2.0-flash",
	"WEBHOOK_SECRET":        "",
	"REPLAY_WINDOW":         10 * time.Minute,
	"DATABASE_URL":          "",
	"OUTPUT_DIR":            "tmp",
}

// LoadConfig reads configuration from config.yaml in path (optional) and
// environment variables. Environment variables win.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		log.Println("Info: config file ('config.yaml') not found, relying on environment variables and defaults.")
	} else {
		log.Printf("Info: using configuration file: %s", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks settings that would otherwise fail at first use.
func (c Config) Validate() error {
	switch c.Generator {
	case "heuristic":
	case "remote":
		if c.RemoteEndpoint == "" {
			return errors.New("REMOTE_ENDPOINT is required when GENERATOR=remote")
		}
	case "openai":
		if c.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY is required when GENERATOR=openai")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when GENERATOR=gemini")
		}
	default:
		return fmt.Errorf("unknown GENERATOR %q", c.Generator)
	}
	if c.WebhookSecret == "" {
		log.Println("WARN: WEBHOOK_SECRET is not set. Signed webhook deliveries will be rejected.")
	}
	return nil
}

// Domains splits ALLOWED_DOMAINS into a clean list.
func (c Config) Domains() []string {
	var out []string
	for _, d := range strings.Split(c.AllowedDomains, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
