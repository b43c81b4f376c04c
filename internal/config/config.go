package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Submission modes
const (
	SubmitModeSimulated = "simulated"
	SubmitModeQueue     = "queue"
)

// Catalogue sources
const (
	CatalogSourceYAML     = "yaml"
	CatalogSourcePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Queue    QueueConfig
	API      APIConfig
	Submit   SubmitConfig
	Catalog  CatalogConfig
	Worker   WorkerConfig
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// QueueConfig holds queue configuration (Redis)
type QueueConfig struct {
	RedisURL  string
	QueueName string
}

// APIConfig holds HTTP server configuration
type APIConfig struct {
	Port int
}

// SubmitConfig selects how accepted enquiries are handed off
type SubmitConfig struct {
	Mode  string
	Delay time.Duration
}

// CatalogConfig selects where the product catalogue is read from
type CatalogConfig struct {
	Source string
	Path   string
}

// WorkerConfig holds intake worker configuration
type WorkerConfig struct {
	Concurrency       int
	MaxRetryCount     int
	IntakeSuccessRate float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	submitDelay, err := time.ParseDuration(getEnv("SUBMIT_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_DELAY: %w", err)
	}
	if submitDelay < 0 {
		return nil, fmt.Errorf("invalid SUBMIT_DELAY: must not be negative")
	}

	submitMode := getEnv("SUBMIT_MODE", SubmitModeSimulated)
	if submitMode != SubmitModeSimulated && submitMode != SubmitModeQueue {
		return nil, fmt.Errorf("invalid SUBMIT_MODE %q (must be %q or %q)", submitMode, SubmitModeSimulated, SubmitModeQueue)
	}

	catalogSource := getEnv("CATALOG_SOURCE", CatalogSourceYAML)
	if catalogSource != CatalogSourceYAML && catalogSource != CatalogSourcePostgres {
		return nil, fmt.Errorf("invalid CATALOG_SOURCE %q (must be %q or %q)", catalogSource, CatalogSourceYAML, CatalogSourcePostgres)
	}

	workerConcurrency, err := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
	}

	maxRetryCount, err := strconv.Atoi(getEnv("MAX_RETRY_COUNT", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_RETRY_COUNT: %w", err)
	}

	successRate, err := strconv.ParseFloat(getEnv("INTAKE_SUCCESS_RATE", "0.92"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid INTAKE_SUCCESS_RATE: %w", err)
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "community_site"),
			Password: getEnv("DB_PASSWORD", "community_site"),
			DBName:   getEnv("DB_NAME", "community_site"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Queue: QueueConfig{
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
			QueueName: getEnv("QUEUE_NAME", "enquiries"),
		},
		API: APIConfig{
			Port: apiPort,
		},
		Submit: SubmitConfig{
			Mode:  submitMode,
			Delay: submitDelay,
		},
		Catalog: CatalogConfig{
			Source: catalogSource,
			Path:   getEnv("CATALOG_PATH", "data/catalog.yaml"),
		},
		Worker: WorkerConfig{
			Concurrency:       workerConcurrency,
			MaxRetryCount:     maxRetryCount,
			IntakeSuccessRate: successRate,
		},
	}, nil
}

// UsesDatabase reports whether any component needs PostgreSQL
func (c *Config) UsesDatabase() bool {
	return c.Catalog.Source == CatalogSourcePostgres
}

// UsesQueue reports whether accepted enquiries go through Redis
func (c *Config) UsesQueue() bool {
	return c.Submit.Mode == SubmitModeQueue
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
