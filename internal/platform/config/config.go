package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort                 = "8080"
	defaultReadTimeout          = 15 * time.Second
	defaultWriteTimeout         = 30 * time.Second
	defaultIdleTimeout          = 120 * time.Second
	defaultPaymentScheme        = "upi"
	defaultPayeeAddress         = "eduaccess@ybl"
	defaultPayeeName            = "EduAccess"
	defaultCurrency             = "INR"
	defaultWebFallbackBase      = "https://pay.eduaccess.example/ru_"
	defaultConfirmFallbackDelay = 2500 * time.Millisecond
	defaultDetectTimeout        = 5 * time.Second
	defaultDetectLatency        = 2 * time.Second
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Payments PaymentsConfig
	Location LocationConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// PaymentsConfig configures the deep-link payment handoff.
type PaymentsConfig struct {
	Scheme               string
	PayeeAddress         string
	PayeeName            string
	Currency             string
	WebFallbackBase      string
	ConfirmFallbackDelay time.Duration
}

// LocationConfig configures the location detection collaborator.
type LocationConfig struct {
	DetectTimeout    time.Duration
	SimulatedLatency time.Duration
	FallbackRegion   string
}

// Load reads configuration from the environment, applying defaults and
// validating the result.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:         envOrDefault("PORT", defaultPort),
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		Payments: PaymentsConfig{
			Scheme:               envOrDefault("PAYMENT_SCHEME", defaultPaymentScheme),
			PayeeAddress:         envOrDefault("PAYMENT_PAYEE_ADDRESS", defaultPayeeAddress),
			PayeeName:            envOrDefault("PAYMENT_PAYEE_NAME", defaultPayeeName),
			Currency:             envOrDefault("PAYMENT_CURRENCY", defaultCurrency),
			WebFallbackBase:      envOrDefault("PAYMENT_WEB_FALLBACK_BASE", defaultWebFallbackBase),
			ConfirmFallbackDelay: defaultConfirmFallbackDelay,
		},
		Location: LocationConfig{
			DetectTimeout:    defaultDetectTimeout,
			SimulatedLatency: defaultDetectLatency,
			FallbackRegion:   strings.TrimSpace(os.Getenv("LOCATION_FALLBACK_REGION")),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = envDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Server.WriteTimeout, err = envDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Server.IdleTimeout, err = envDuration("SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Payments.ConfirmFallbackDelay, err = envDuration("PAYMENT_CONFIRM_FALLBACK_DELAY", cfg.Payments.ConfirmFallbackDelay); err != nil {
		return Config{}, err
	}
	if cfg.Location.DetectTimeout, err = envDuration("LOCATION_DETECT_TIMEOUT", cfg.Location.DetectTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Location.SimulatedLatency, err = envDuration("LOCATION_SIMULATED_LATENCY", cfg.Location.SimulatedLatency); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("config: server port must not be empty")
	}
	if strings.TrimSpace(c.Payments.Scheme) == "" {
		return fmt.Errorf("config: payment scheme must not be empty")
	}
	if strings.TrimSpace(c.Payments.PayeeAddress) == "" {
		return fmt.Errorf("config: payment payee address must not be empty")
	}
	if c.Payments.ConfirmFallbackDelay <= 0 {
		return fmt.Errorf("config: confirm fallback delay must be positive")
	}
	if c.Location.DetectTimeout <= 0 {
		return fmt.Errorf("config: location detect timeout must be positive")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: invalid duration for %s: %w", key, err)
	}
	return parsed, nil
}
