package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.MockDir != "" {
		target.MockDir = source.MockDir
		target.Sources["mockDir"] = sourceType
	}
	if source.Port != 0 {
		target.Port = source.Port
		target.Sources["port"] = sourceType
	}
	if source.MetricsPort != 0 {
		target.MetricsPort = source.MetricsPort
		target.Sources["metricsPort"] = sourceType
	}
	// Zero is meaningful for timeouts (disabled), so an explicit key wins.
	if source.ReadTimeout != 0 || fieldIsSet(source, "readTimeout") {
		target.ReadTimeout = source.ReadTimeout
		target.Sources["readTimeout"] = sourceType
	}
	if source.WriteTimeout != 0 || fieldIsSet(source, "writeTimeout") {
		target.WriteTimeout = source.WriteTimeout
		target.Sources["writeTimeout"] = sourceType
	}
	if len(source.Headers) > 0 {
		target.Headers = append([]string(nil), source.Headers...)
		target.Sources["headers"] = sourceType
	}
	if source.HeadersEnv != "" {
		target.HeadersEnv = source.HeadersEnv
		target.Sources["headersEnv"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.LogFile != "" {
		target.LogFile = source.LogFile
		target.Sources["logFile"] = sourceType
	}
	if boolIsSet(source, "verbose") {
		target.Verbose = source.Verbose
		target.Sources["verbose"] = sourceType
	}
	if boolIsSet(source, "watch") {
		target.Watch = source.Watch
		target.Sources["watch"] = sourceType
	}
}

func fieldIsSet(cfg *CLIConfig, yamlKey string) bool {
	return cfg.SetFields != nil && cfg.SetFields[yamlKey]
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields (programmatic
// configs) only true counts as set.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "verbose":
		return cfg.Verbose
	case "watch":
		return cfg.Watch
	}
	return false
}
