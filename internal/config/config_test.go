package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

var allEnvVars = []string{
	"HOST", "PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"ENVIRONMENT", "MAX_BODY_BYTES",
	"DATABASE_URL", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME",
	"CORS_ALLOWED_ORIGINS", "CORS_MAX_AGE", "LOG_LEVEL", "LOG_FORMAT",
}

func setEnvVars(vars map[string]string) {
	for k, v := range vars {
		os.Setenv(k, v)
	}
}

func clearEnvVars(vars []string) {
	for _, k := range vars {
		os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnvVars(allEnvVars)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error with default config, got: %v", err)
	}

	if config.Server.Port != "3030" {
		t.Errorf("Expected default port '3030', got %s", config.Server.Port)
	}

	if config.Server.Environment != "development" {
		t.Errorf("Expected default environment 'development', got %s", config.Server.Environment)
	}

	if config.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("Expected default max body of 1MiB, got %d", config.Server.MaxBodyBytes)
	}

	if config.Database.Driver != DriverPostgres {
		t.Errorf("Expected default driver %q, got %q", DriverPostgres, config.Database.Driver)
	}

	if config.Database.MaxOpenConns != 16 {
		t.Errorf("Expected default MaxOpenConns 16, got %d", config.Database.MaxOpenConns)
	}

	if config.CORS.AllowedOrigins != nil {
		t.Errorf("Expected CORS to be disabled by default, got %v", config.CORS.AllowedOrigins)
	}

	if config.Log.Format != "json" {
		t.Errorf("Expected default log format 'json', got %s", config.Log.Format)
	}
}

func TestLoadConfig_CustomEnvironment(t *testing.T) {
	envVars := map[string]string{
		"HOST":                 "0.0.0.0",
		"PORT":                 "8080",
		"SHUTDOWN_TIMEOUT":     "5s",
		"DATABASE_URL":         "postgres://app:secret@db:5432/tasks",
		"DB_MAX_OPEN_CONNS":    "4",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
		"LOG_LEVEL":            "debug",
	}
	setEnvVars(envVars)
	defer clearEnvVars(allEnvVars)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.GetServerAddr() != "0.0.0.0:8080" {
		t.Errorf("Expected server addr '0.0.0.0:8080', got %s", config.GetServerAddr())
	}

	if config.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected shutdown timeout 5s, got %v", config.Server.ShutdownTimeout)
	}

	if config.Database.MaxOpenConns != 4 {
		t.Errorf("Expected MaxOpenConns 4, got %d", config.Database.MaxOpenConns)
	}

	if config.GetDatabaseDSN() != "postgres://app:secret@db:5432/tasks" {
		t.Errorf("Expected DATABASE_URL to win, got %s", config.GetDatabaseDSN())
	}

	expectedOrigins := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(config.CORS.AllowedOrigins, expectedOrigins) {
		t.Errorf("Expected origins %v, got %v", expectedOrigins, config.CORS.AllowedOrigins)
	}

	if config.Log.Level != "debug" {
		t.Errorf("Expected log level 'debug', got %s", config.Log.Level)
	}
}

func TestLoadConfig_ProductionValidation(t *testing.T) {
	clearEnvVars(allEnvVars)
	setEnvVars(map[string]string{"ENVIRONMENT": "production"})
	defer clearEnvVars(allEnvVars)

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for missing database credentials in production")
	}

	if err.Error() != "DATABASE_URL or database password is required in production" {
		t.Errorf("Expected specific error message, got: %v", err)
	}
}

func TestConfigValidation_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		hasError bool
	}{
		{
			name: "Production with database URL",
			envVars: map[string]string{
				"ENVIRONMENT":  "production",
				"DATABASE_URL": "postgres://app@db/tasks",
			},
			hasError: false,
		},
		{
			name: "Production with password",
			envVars: map[string]string{
				"ENVIRONMENT": "production",
				"DB_PASSWORD": "secure-password",
			},
			hasError: false,
		},
		{
			name:     "SQLite driver",
			envVars:  map[string]string{"DB_DRIVER": "sqlite"},
			hasError: false,
		},
		{
			name:     "Unknown driver",
			envVars:  map[string]string{"DB_DRIVER": "mysql"},
			hasError: true,
		},
		{
			name:     "Zero pool size",
			envVars:  map[string]string{"DB_MAX_OPEN_CONNS": "0"},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(allEnvVars)
			setEnvVars(tt.envVars)
			defer clearEnvVars(allEnvVars)

			_, err := LoadConfig()
			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.hasError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestConfig_GetDatabaseDSN(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
			SSLMode:  "require",
		},
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require"
	if actual := config.GetDatabaseDSN(); actual != expected {
		t.Errorf("Expected DSN '%s', got '%s'", expected, actual)
	}

	config.Database.Driver = DriverSQLite
	if actual := config.GetDatabaseDSN(); actual != "testdb.db" {
		t.Errorf("Expected sqlite file 'testdb.db', got '%s'", actual)
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		environment string
		expected    bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
		{"", false},
	}

	for _, test := range tests {
		config := &Config{Server: ServerConfig{Environment: test.environment}}

		if actual := config.IsProduction(); actual != test.expected {
			t.Errorf("For environment '%s', expected IsProduction() = %v, got %v",
				test.environment, test.expected, actual)
		}
	}
}

func TestGetEnvAsInt(t *testing.T) {
	key := "TEST_INT_VAR"
	defaultValue := 42

	os.Unsetenv(key)
	if result := getEnvAsInt(key, defaultValue); result != defaultValue {
		t.Errorf("Expected default value %d, got %d", defaultValue, result)
	}

	os.Setenv(key, "100")
	defer os.Unsetenv(key)

	if result := getEnvAsInt(key, defaultValue); result != 100 {
		t.Errorf("Expected env value 100, got %d", result)
	}

	os.Setenv(key, "not-a-number")
	if result := getEnvAsInt(key, defaultValue); result != defaultValue {
		t.Errorf("Expected default value %d for invalid int, got %d", defaultValue, result)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"
	defaultValue := 30 * time.Second

	os.Setenv(key, "5m")
	defer os.Unsetenv(key)

	if result := getEnvAsDuration(key, defaultValue); result != 5*time.Minute {
		t.Errorf("Expected env value 5m, got %v", result)
	}

	os.Setenv(key, "not-a-duration")
	if result := getEnvAsDuration(key, defaultValue); result != defaultValue {
		t.Errorf("Expected default value %v for invalid duration, got %v", defaultValue, result)
	}
}

func TestGetEnvAsList(t *testing.T) {
	key := "TEST_LIST_VAR"

	os.Unsetenv(key)
	if result := getEnvAsList(key, nil); result != nil {
		t.Errorf("Expected nil for unset list, got %v", result)
	}

	os.Setenv(key, " a ,, b ")
	defer os.Unsetenv(key)

	if result := getEnvAsList(key, nil); !reflect.DeepEqual(result, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", result)
	}
}

func BenchmarkLoadConfig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = LoadConfig()
	}
}
