package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	AcquiringBank AcquiringBankConfig `mapstructure:"acquiring_bank"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// AcquiringBankConfig is fixed at startup; the retry policy and timeout are
// process-wide and never change at runtime.
type AcquiringBankConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	TimeoutSeconds  int           `mapstructure:"timeout_seconds"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`
	DefaultBankName string        `mapstructure:"default_bank_name"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DefaultBankTimeoutSeconds = 30
	DefaultBankMaxRetries     = 3
	DefaultBankRetryBackoff   = 2 * time.Second
	DefaultBankName           = "FirstAcquiringBank"
)

func (c *AcquiringBankConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultBankTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *AcquiringBankConfig) Backoff() time.Duration {
	if c.RetryBackoff <= 0 {
		return DefaultBankRetryBackoff
	}
	return c.RetryBackoff
}

func (c *AcquiringBankConfig) Retries() int {
	if c.MaxRetries <= 0 {
		return DefaultBankMaxRetries
	}
	return c.MaxRetries
}

func (c *AcquiringBankConfig) BankName() string {
	if c.DefaultBankName == "" {
		return DefaultBankName
	}
	return c.DefaultBankName
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds the configuration from environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:           getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			ReadHeaderTimeout: getEnvAsDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		AcquiringBank: AcquiringBankConfig{
			BaseURL:         getEnv("ACQUIRING_BANK_BASE_URL", "http://localhost:8090"),
			TimeoutSeconds:  getEnvAsInt("ACQUIRING_BANK_TIMEOUT_SECONDS", DefaultBankTimeoutSeconds),
			MaxRetries:      getEnvAsInt("ACQUIRING_BANK_MAX_RETRIES", DefaultBankMaxRetries),
			RetryBackoff:    getEnvAsDuration("ACQUIRING_BANK_RETRY_BACKOFF", DefaultBankRetryBackoff),
			DefaultBankName: getEnv("ACQUIRING_BANK_DEFAULT_NAME", DefaultBankName),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.AcquiringBank.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("acquiring bank config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *AcquiringBankConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds cannot be negative")
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries cannot be negative")
	}
	return nil
}
