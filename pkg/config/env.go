package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable prefix for all scanner settings
const envPrefix = "TCPSCAN_"

// ScanConfig contains runtime tunables that are not part of the CLI surface
type ScanConfig struct {
	// Buffer between probe tasks and the result collector
	ResultChannelBuffer int

	// Buffer size for the report writer
	OutputBufferSize int

	// Budget for the best-effort host lookup
	ResolveTimeout time.Duration
}

// DefaultScanConfig returns scanner tunables with env overrides applied
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		ResultChannelBuffer: getEnvInt("RESULT_BUFFER", 1000),                 // 1000 outcomes
		OutputBufferSize:    getEnvInt("OUTPUT_BUFFER_SIZE", 64*1024),         // 64KB
		ResolveTimeout:      getEnvDuration("RESOLVE_TIMEOUT", 2*time.Second), // 2s
	}
}

// getEnvInt retrieves an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(envPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable with a default value
// Accepts values like "500ms", "5s", "1m"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(envPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}

// Global configuration instance (initialized once at startup)
var Scan = DefaultScanConfig()

// Init initializes all configuration from environment variables
// Call this at application startup
func Init() {
	Scan = DefaultScanConfig()
}
