package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/getmockd/mockserver/pkg/cliconfig"
)

// configFlags holds the flag values that override CLIConfig fields.
type configFlags struct {
	mockDir      string
	port         int
	verbose      bool
	headers      []string
	readTimeout  int
	writeTimeout int
	metricsPort  int
	watch        bool
	logLevel     string
	logFormat    string
	logFile      string
}

// bindMatchFlags registers the flags that influence which mock file is chosen.
func (f *configFlags) bindMatchFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.mockDir, "dir", "m", "", "Mock directory root")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log every candidate mock file and whether it matched")
	fs.StringSliceVarP(&f.headers, "headers", "H", nil, "Request headers that take part in matching (repeatable, comma-separated; overrides MOCK_HEADERS)")
}

// bindServerFlags registers listener and logging flags.
func (f *configFlags) bindServerFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "HTTP port for mock traffic (0 picks a free port)")
	fs.IntVar(&f.readTimeout, "read-timeout", cliconfig.DefaultReadTimeout, "Read timeout in seconds (0 disables)")
	fs.IntVar(&f.writeTimeout, "write-timeout", cliconfig.DefaultWriteTimeout, "Write timeout in seconds (0 disables)")
	fs.IntVar(&f.metricsPort, "metrics-port", 0, "Serve Prometheus metrics and /health on this port (0 disables)")
	fs.BoolVar(&f.watch, "watch", false, "Log changes in the mock directory")
	fs.StringVar(&f.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	fs.StringVar(&f.logFile, "log-file", "", "Also write logs to this rotating file")
}

// loadConfig merges defaults, config files and environment, then applies
// the flags the user actually set.
func loadConfig(cmd *cobra.Command, f *configFlags) (*cliconfig.CLIConfig, error) {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return nil, err
	}
	f.apply(cmd.Flags(), cfg)
	return cfg, nil
}

func (f *configFlags) apply(fs *pflag.FlagSet, cfg *cliconfig.CLIConfig) {
	set := func(flag, key string, assign func()) {
		if fs.Lookup(flag) != nil && fs.Changed(flag) {
			assign()
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	set("dir", "mockDir", func() { cfg.MockDir = f.mockDir })
	set("verbose", "verbose", func() { cfg.Verbose = f.verbose })
	set("headers", "headers", func() { cfg.Headers = f.headers })
	set("port", "port", func() { cfg.Port = f.port })
	set("read-timeout", "readTimeout", func() { cfg.ReadTimeout = f.readTimeout })
	set("write-timeout", "writeTimeout", func() { cfg.WriteTimeout = f.writeTimeout })
	set("metrics-port", "metricsPort", func() { cfg.MetricsPort = f.metricsPort })
	set("watch", "watch", func() { cfg.Watch = f.watch })
	set("log-level", "logLevel", func() { cfg.LogLevel = f.logLevel })
	set("log-format", "logFormat", func() { cfg.LogFormat = f.logFormat })
	set("log-file", "logFile", func() { cfg.LogFile = f.logFile })
}
