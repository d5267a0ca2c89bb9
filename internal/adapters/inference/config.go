package inference

import (
	"strings"
	"time"

	"slopmeter/internal/platform/config"
)

const (
	defaultBaseURL         = "https://api.runpod.ai"
	defaultModelID         = 0
	defaultTimeout         = 60 * time.Second
	defaultBreakerFailures = 5
	defaultBreakerCooldown = 30 * time.Second
)

// Config configures the inference endpoint
type Config struct {
	BaseURL    string
	APIKey     string
	EndpointID string
	// ModelID is recorded on stored submissions
	ModelID int
	Timeout time.Duration

	// BreakerFailures consecutive failures open the breaker for BreakerCooldown
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// ConfigFromEnv reads CORE_INFERENCE_*
func ConfigFromEnv() Config {
	c := config.New().Prefix("CORE_INFERENCE_")
	return Config{
		BaseURL:         c.MayString("BASE_URL", defaultBaseURL),
		APIKey:          c.MayString("API_KEY", ""),
		EndpointID:      c.MayString("ENDPOINT_ID", ""),
		ModelID:         c.MayIntIn("MODEL_ID", defaultModelID, 0, 1<<20),
		Timeout:         c.MayDuration("TIMEOUT", defaultTimeout),
		BreakerFailures: uint32(c.MayIntIn("BREAKER_FAILURES", defaultBreakerFailures, 1, 1000)),
		BreakerCooldown: c.MayDuration("BREAKER_COOLDOWN", defaultBreakerCooldown),
	}
}

// Configured reports whether both the key and the endpoint are set
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.EndpointID) != ""
}

func (c Config) withDefaults() Config {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = defaultBreakerFailures
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = defaultBreakerCooldown
	}
	return c
}
