package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvMockDir      = "MOCKSERVER_DIR"
	EnvPort         = "MOCKSERVER_PORT"
	EnvVerbose      = "MOCKSERVER_VERBOSE"
	EnvReadTimeout  = "MOCKSERVER_READ_TIMEOUT"
	EnvWriteTimeout = "MOCKSERVER_WRITE_TIMEOUT"
	EnvMetricsPort  = "MOCKSERVER_METRICS_PORT"
	EnvWatch        = "MOCKSERVER_WATCH"
	EnvLogLevel     = "MOCKSERVER_LOG_LEVEL"
	EnvLogFormat    = "MOCKSERVER_LOG_FORMAT"
	EnvLogFile      = "MOCKSERVER_LOG_FILE"

	// EnvMockHeaders is the comma-separated fallback header watch-list.
	EnvMockHeaders = "MOCK_HEADERS"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment; unparsable
// numbers and booleans are ignored.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	envString(cfg, EnvMockDir, "mockDir", &cfg.MockDir)
	envString(cfg, EnvLogLevel, "logLevel", &cfg.LogLevel)
	envString(cfg, EnvLogFormat, "logFormat", &cfg.LogFormat)
	envString(cfg, EnvLogFile, "logFile", &cfg.LogFile)
	envString(cfg, EnvMockHeaders, "headersEnv", &cfg.HeadersEnv)

	envInt(cfg, EnvPort, "port", &cfg.Port)
	envInt(cfg, EnvMetricsPort, "metricsPort", &cfg.MetricsPort)
	envInt(cfg, EnvReadTimeout, "readTimeout", &cfg.ReadTimeout)
	envInt(cfg, EnvWriteTimeout, "writeTimeout", &cfg.WriteTimeout)

	envBool(cfg, EnvVerbose, "verbose", &cfg.Verbose)
	envBool(cfg, EnvWatch, "watch", &cfg.Watch)
}

func envString(cfg *CLIConfig, name, key string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
		cfg.Sources[key] = SourceEnv
	}
}

func envInt(cfg *CLIConfig, name, key string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
			cfg.Sources[key] = SourceEnv
		}
	}
}

func envBool(cfg *CLIConfig, name, key string, dst *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
			cfg.Sources[key] = SourceEnv
		}
	}
}
