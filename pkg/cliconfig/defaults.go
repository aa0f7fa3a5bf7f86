package cliconfig

// DefaultPort is the default HTTP server port for mock traffic.
const DefaultPort = 9001

// DefaultReadTimeout is the default read timeout in seconds.
const DefaultReadTimeout = 30

// DefaultWriteTimeout is the default write timeout in seconds. Zero disables
// it so long Response-Delay values are not cut off.
const DefaultWriteTimeout = 0

// DefaultLogLevel and DefaultLogFormat configure the operational logger.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Port:         DefaultPort,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Sources:      make(map[string]string),
	}

	for _, key := range []string{"port", "readTimeout", "writeTimeout", "logLevel", "logFormat", "verbose", "watch"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
