package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Data source identifiers accepted by DATA_SOURCE
const (
	DataSourceCSV   = "csv"
	DataSourceMongo = "mongo"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Dataset configuration
	DataSource       string `json:"data_source"`
	DatasetPath      string `json:"dataset_path"`
	DatasetChunkSize int    `json:"dataset_chunk_size"`

	// MongoDB configuration
	MongoURI        string `json:"mongo_uri"`
	MongoDatabase   string `json:"mongo_database"`
	CasesCollection string `json:"mongo_cases_collection"`

	// Redis configuration
	RedisEnabled      bool          `json:"redis_enabled"`
	RedisURI          string        `json:"redis_uri"`
	RedisPassword     string        `json:"redis_password"`
	RedisDB           int           `json:"redis_db"`
	RedisTTL          time.Duration `json:"redis_ttl"`
	RedisPoolSize     int           `json:"redis_pool_size"`
	RedisDialTimeout  time.Duration `json:"redis_dial_timeout"`
	RedisReadTimeout  time.Duration `json:"redis_read_timeout"`
	RedisWriteTimeout time.Duration `json:"redis_write_timeout"`

	// Tracing configuration
	TracingEnabled     bool    `json:"tracing_enabled"`
	TracingEndpoint    string  `json:"tracing_endpoint"`
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`

	// CORS configuration
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8050"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	dataSource := strings.ToLower(getEnvOrDefault("DATA_SOURCE", DataSourceCSV))
	if dataSource != DataSourceCSV && dataSource != DataSourceMongo {
		return fmt.Errorf("invalid DATA_SOURCE: %q (expected %q or %q)", dataSource, DataSourceCSV, DataSourceMongo)
	}

	datasetPath := os.Getenv("DATASET_PATH")
	if dataSource == DataSourceCSV && datasetPath == "" {
		return fmt.Errorf("DATASET_PATH environment variable is required when DATA_SOURCE=%s", DataSourceCSV)
	}

	chunkSize, err := strconv.Atoi(getEnvOrDefault("DATASET_CHUNK_SIZE", "100000"))
	if err != nil {
		return fmt.Errorf("invalid DATASET_CHUNK_SIZE: %w", err)
	}
	if chunkSize <= 0 {
		return fmt.Errorf("invalid DATASET_CHUNK_SIZE: must be positive, got %d", chunkSize)
	}

	redisEnabled, err := strconv.ParseBool(getEnvOrDefault("REDIS_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("TRACING_SAMPLE_RATIO", "1"), 64)
	if err != nil {
		return fmt.Errorf("invalid TRACING_SAMPLE_RATIO: %w", err)
	}
	if sampleRatio < 0 || sampleRatio > 1 {
		return fmt.Errorf("invalid TRACING_SAMPLE_RATIO: must be between 0 and 1, got %g", sampleRatio)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Dataset configuration
		DataSource:       dataSource,
		DatasetPath:      datasetPath,
		DatasetChunkSize: chunkSize,

		// MongoDB configuration
		MongoURI:        getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnvOrDefault("MONGODB_DATABASE", "painel_dengue"),
		CasesCollection: getEnvOrDefault("MONGODB_CASES_COLLECTION", "sinan_dengue"),

		// Redis configuration
		RedisEnabled:      redisEnabled,
		RedisURI:          getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword:     getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:           redisDB,
		RedisTTL:          redisTTL,
		RedisPoolSize:     getEnvAsIntOrDefault("REDIS_POOL_SIZE", 10),
		RedisDialTimeout:  getEnvAsDurationOrDefault("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:  getEnvAsDurationOrDefault("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout: getEnvAsDurationOrDefault("REDIS_WRITE_TIMEOUT", 3*time.Second),

		// Tracing configuration
		TracingEnabled:     tracingEnabled,
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: sampleRatio,

		// CORS configuration
		CORSAllowedOrigins: parseCommaSeparatedList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns environment variable as int or default if not set or invalid
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns environment variable as duration or default if not set or invalid
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseCommaSeparatedList splits a comma separated value, dropping empty items
func parseCommaSeparatedList(value string) []string {
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
