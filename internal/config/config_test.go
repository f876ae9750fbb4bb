package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable LoadConfig reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "DATA_SOURCE", "DATASET_PATH", "DATASET_CHUNK_SIZE",
		"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_CASES_COLLECTION",
		"REDIS_ENABLED", "REDIS_URI", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TTL",
		"REDIS_POOL_SIZE", "REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_WRITE_TIMEOUT",
		"TRACING_ENABLED", "TRACING_ENDPOINT", "TRACING_SAMPLE_RATIO", "CORS_ALLOWED_ORIGINS",
	} {
		os.Unsetenv(key)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		setEnv       bool
		want         string
	}{
		{
			name:         "environment variable set",
			key:          "TEST_KEY_1",
			defaultValue: "default",
			envValue:     "custom",
			setEnv:       true,
			want:         "custom",
		},
		{
			name:         "environment variable not set",
			key:          "TEST_KEY_2",
			defaultValue: "default",
			setEnv:       false,
			want:         "default",
		},
		{
			name:         "empty environment variable",
			key:          "TEST_KEY_3",
			defaultValue: "default",
			envValue:     "",
			setEnv:       true,
			want:         "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnvOrDefault(tt.key, tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		setEnv   bool
		want     int
	}{
		{name: "valid integer", envValue: "42", setEnv: true, want: 42},
		{name: "not set", setEnv: false, want: 10},
		{name: "invalid integer", envValue: "abc", setEnv: true, want: 10},
		{name: "negative integer", envValue: "-5", setEnv: true, want: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv("TEST_INT", tt.envValue)
				defer os.Unsetenv("TEST_INT")
			}

			assert.Equal(t, tt.want, getEnvAsIntOrDefault("TEST_INT", 10))
		})
	}
}

func TestGetEnvAsDurationOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		setEnv   bool
		want     time.Duration
	}{
		{name: "valid duration", envValue: "5m", setEnv: true, want: 5 * time.Minute},
		{name: "not set", setEnv: false, want: 10 * time.Second},
		{name: "invalid duration", envValue: "invalid", setEnv: true, want: 10 * time.Second},
		{name: "milliseconds", envValue: "500ms", setEnv: true, want: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv("TEST_DUR", tt.envValue)
				defer os.Unsetenv("TEST_DUR")
			}

			assert.Equal(t, tt.want, getEnvAsDurationOrDefault("TEST_DUR", 10*time.Second))
		})
	}
}

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "simple list", value: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "with spaces", value: " a , b ,c ", want: []string{"a", "b", "c"}},
		{name: "empty items", value: "a,,b,", want: []string{"a", "b"}},
		{name: "empty string", value: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCommaSeparatedList(tt.value))
		})
	}
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	originalConfig := AppConfig
	defer func() { AppConfig = originalConfig }()
	clearEnv(t)

	os.Setenv("DATASET_PATH", "/data/sinan_dengue_sample_2024.csv")
	defer os.Unsetenv("DATASET_PATH")

	err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, AppConfig)

	assert.Equal(t, 8050, AppConfig.Port)
	assert.Equal(t, "development", AppConfig.Environment)
	assert.Equal(t, DataSourceCSV, AppConfig.DataSource)
	assert.Equal(t, 100000, AppConfig.DatasetChunkSize)
	assert.Equal(t, "painel_dengue", AppConfig.MongoDatabase)
	assert.Equal(t, "sinan_dengue", AppConfig.CasesCollection)
	assert.False(t, AppConfig.RedisEnabled)
	assert.Equal(t, 60*time.Minute, AppConfig.RedisTTL)
	assert.Equal(t, 10, AppConfig.RedisPoolSize)
	assert.False(t, AppConfig.TracingEnabled)
	assert.Equal(t, 1.0, AppConfig.TracingSampleRatio)
	assert.Nil(t, AppConfig.CORSAllowedOrigins)
}

func TestLoadConfig_CustomValues(t *testing.T) {
	originalConfig := AppConfig
	defer func() { AppConfig = originalConfig }()
	clearEnv(t)
	defer clearEnv(t)

	os.Setenv("PORT", "9090")
	os.Setenv("ENVIRONMENT", "production")
	os.Setenv("DATA_SOURCE", "MONGO")
	os.Setenv("DATASET_CHUNK_SIZE", "5000")
	os.Setenv("REDIS_ENABLED", "true")
	os.Setenv("REDIS_TTL", "15m")
	os.Setenv("TRACING_ENABLED", "true")
	os.Setenv("TRACING_SAMPLE_RATIO", "0.25")
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://painel.rio, https://dados.rio")

	err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, AppConfig.Port)
	assert.Equal(t, "production", AppConfig.Environment)
	assert.Equal(t, DataSourceMongo, AppConfig.DataSource)
	assert.Empty(t, AppConfig.DatasetPath)
	assert.Equal(t, 5000, AppConfig.DatasetChunkSize)
	assert.True(t, AppConfig.RedisEnabled)
	assert.Equal(t, 15*time.Minute, AppConfig.RedisTTL)
	assert.True(t, AppConfig.TracingEnabled)
	assert.Equal(t, 0.25, AppConfig.TracingSampleRatio)
	assert.Equal(t, []string{"https://painel.rio", "https://dados.rio"}, AppConfig.CORSAllowedOrigins)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "invalid port",
			env:     map[string]string{"PORT": "invalid", "DATASET_PATH": "x.csv"},
			wantErr: "invalid PORT",
		},
		{
			name:    "invalid data source",
			env:     map[string]string{"DATA_SOURCE": "parquet", "DATASET_PATH": "x.csv"},
			wantErr: "invalid DATA_SOURCE",
		},
		{
			name:    "missing dataset path",
			env:     map[string]string{"DATA_SOURCE": "csv"},
			wantErr: "DATASET_PATH environment variable is required",
		},
		{
			name:    "invalid chunk size",
			env:     map[string]string{"DATASET_PATH": "x.csv", "DATASET_CHUNK_SIZE": "many"},
			wantErr: "invalid DATASET_CHUNK_SIZE",
		},
		{
			name:    "non-positive chunk size",
			env:     map[string]string{"DATASET_PATH": "x.csv", "DATASET_CHUNK_SIZE": "0"},
			wantErr: "must be positive",
		},
		{
			name:    "invalid redis enabled",
			env:     map[string]string{"DATASET_PATH": "x.csv", "REDIS_ENABLED": "maybe"},
			wantErr: "invalid REDIS_ENABLED",
		},
		{
			name:    "invalid redis db",
			env:     map[string]string{"DATASET_PATH": "x.csv", "REDIS_DB": "one"},
			wantErr: "invalid REDIS_DB",
		},
		{
			name:    "invalid redis ttl",
			env:     map[string]string{"DATASET_PATH": "x.csv", "REDIS_TTL": "forever"},
			wantErr: "invalid REDIS_TTL",
		},
		{
			name:    "invalid tracing enabled",
			env:     map[string]string{"DATASET_PATH": "x.csv", "TRACING_ENABLED": "yes please"},
			wantErr: "invalid TRACING_ENABLED",
		},
		{
			name:    "invalid tracing sample ratio",
			env:     map[string]string{"DATASET_PATH": "x.csv", "TRACING_SAMPLE_RATIO": "half"},
			wantErr: "invalid TRACING_SAMPLE_RATIO",
		},
		{
			name:    "tracing sample ratio out of range",
			env:     map[string]string{"DATASET_PATH": "x.csv", "TRACING_SAMPLE_RATIO": "1.5"},
			wantErr: "must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			defer clearEnv(t)
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			err := LoadConfig()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should contain %q", err.Error(), tt.wantErr)
		})
	}
}
