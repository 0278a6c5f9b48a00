package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/satriahrh/speechsuite/domain/entities"
)

// Config holds application-wide configuration populated from environment variables.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8000"`
	AudioDir        string        `env:"AUDIO_DIR" envDefault:"audio"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"web"`
	MaxArtifacts    int           `env:"MAX_ARTIFACTS" envDefault:"50"`
	MaxArtifactAge  time.Duration `env:"MAX_ARTIFACT_AGE" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`

	DefaultRate           float64       `env:"DEFAULT_RATE" envDefault:"1.0"`
	DefaultVolume         float64       `env:"DEFAULT_VOLUME" envDefault:"1.0"`
	RequestTimeoutSeconds int           `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"10"`
	SynthesisRetries      int           `env:"SYNTHESIS_RETRIES" envDefault:"0"`
	RetryBackoff          time.Duration `env:"SYNTHESIS_RETRY_BACKOFF" envDefault:"500ms"`
	MaxTextLength         int           `env:"MAX_TEXT_LENGTH" envDefault:"5000"`

	Backend    string `env:"TTS_BACKEND" envDefault:"edge"` // edge, elevenlabs or mock
	EdgeTTSURL string `env:"EDGE_TTS_URL"`

	APISecret string `env:"API_SECRET"`

	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"speechsuite"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then the environment, and validates the result.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	return parse(env.ToMap(os.Environ()))
}

func parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the bounds of every setting
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.AudioDir == "" {
		return fmt.Errorf("AUDIO_DIR cannot be empty")
	}
	if c.MaxArtifacts < 1 {
		return fmt.Errorf("MAX_ARTIFACTS must be at least 1, got %d", c.MaxArtifacts)
	}
	if c.MaxArtifactAge < 0 {
		return fmt.Errorf("MAX_ARTIFACT_AGE cannot be negative")
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("CLEANUP_INTERVAL must be positive")
	}
	if math.IsNaN(c.DefaultRate) || c.DefaultRate < entities.MinRate || c.DefaultRate > entities.MaxRate {
		return fmt.Errorf("DEFAULT_RATE must be between %.1f and %.1f, got %g", entities.MinRate, entities.MaxRate, c.DefaultRate)
	}
	if math.IsNaN(c.DefaultVolume) || c.DefaultVolume < entities.MinVolume || c.DefaultVolume > entities.MaxVolume {
		return fmt.Errorf("DEFAULT_VOLUME must be between %.1f and %.1f, got %g", entities.MinVolume, entities.MaxVolume, c.DefaultVolume)
	}
	if c.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be at least 1")
	}
	if c.SynthesisRetries < 0 {
		return fmt.Errorf("SYNTHESIS_RETRIES cannot be negative")
	}
	if c.MaxTextLength < 1 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be at least 1")
	}

	switch c.Backend {
	case "edge", "elevenlabs", "mock":
	default:
		return fmt.Errorf("TTS_BACKEND must be edge, elevenlabs or mock, got %q", c.Backend)
	}

	return nil
}

// RequestTimeout bounds each outbound synthesis call
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Address is the listen address for the HTTP server
func (c *Config) Address() string {
	return ":" + c.Port
}
