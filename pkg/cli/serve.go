package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockserver/internal/mockfs"
	"github.com/getmockd/mockserver/pkg/cliconfig"
	"github.com/getmockd/mockserver/pkg/engine"
	"github.com/getmockd/mockserver/pkg/logging"
	"github.com/getmockd/mockserver/pkg/metrics"
	"github.com/getmockd/mockserver/pkg/resolver"
)

var serveFlagVals configFlags

var serveHost string

// serveCmd runs the mock server in the foreground until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mock directory over HTTP (default command)",
	Long: `Serve answers every HTTP request from the mock directory. Requests with
no matching mock file get 404 "Not Mocked"; mock files that cannot be rendered
get 500 "Invalid Mock".`,
	Example: `  # Serve ./mocks on the default port
  mockserver serve --dir ./mocks

  # Match on two request headers and log every candidate file
  mockserver --dir ./mocks -H Authorization -H X-Tenant --verbose

  # Expose Prometheus metrics on a second port
  mockserver serve -m ./mocks -p 8080 --metrics-port 9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &serveFlagVals)
		if err != nil {
			return err
		}
		if cfg.MockDir == "" {
			return ErrMockDirMissing
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, *cfg, serveOptions{
			host:   serveHost,
			stdout: cmd.OutOrStdout(),
			stderr: cmd.ErrOrStderr(),
		})
	},
}

type serveOptions struct {
	host   string
	stdout io.Writer
	stderr io.Writer
	// ready is called with the bound address once the server accepts requests.
	ready func(addr string)
}

// runServe serves cfg until ctx is done, then shuts down gracefully.
func runServe(ctx context.Context, cfg cliconfig.CLIConfig, opts serveOptions) error {
	log, closer := logging.Open(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: opts.stderr,
		File:   cfg.LogFile,
	})
	defer closer.Close()

	if info, err := os.Stat(cfg.MockDir); err != nil || !info.IsDir() {
		log.Warn("mock directory not found, every request will be not mocked", "dir", cfg.MockDir)
	}

	m := metrics.New()
	index := mockfs.New(cfg.MockDir)
	res := resolver.New(index,
		resolver.WithLogger(log),
		resolver.WithVerbose(cfg.Verbose),
	)
	watched := cfg.WatchedHeaders()
	handler := engine.NewHandler(res,
		engine.WithHandlerLogger(log),
		engine.WithHandlerMetrics(m),
		engine.WithWatchedHeaders(watched),
	)
	srv := engine.NewServer(engine.ServerConfig{
		Host:         opts.host,
		Port:         cfg.Port,
		MetricsPort:  cfg.MetricsPort,
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
	}, handler, engine.WithLogger(log), engine.WithMetrics(m))

	if err := srv.Start(); err != nil {
		return err
	}
	log.Info("serving mocks", "dir", index.Root(), "headers", watched, "verbose", cfg.Verbose)
	fmt.Fprintf(opts.stdout, "Mock server listening on %s\n", srv.Addr())
	if addr := srv.MetricsAddr(); addr != "" {
		fmt.Fprintf(opts.stdout, "Metrics available at http://%s/metrics\n", addr)
	}
	if opts.ready != nil {
		opts.ready(srv.Addr())
	}

	watchDone := make(chan struct{})
	if cfg.Watch {
		go func() {
			defer close(watchDone)
			logWatchError(log, engine.NewWatcher(index, log, m).Run(ctx, nil))
		}()
	} else {
		close(watchDone)
	}

	<-ctx.Done()
	log.Info("shutting down")

	err := srv.Stop()
	<-watchDone
	return err
}

// logWatchError keeps a failed watcher from taking the server down.
func logWatchError(log *slog.Logger, err error) {
	if err != nil {
		log.Error("mock directory watcher stopped", "error", err)
	}
}

func init() {
	serveFlagVals.bindMatchFlags(serveCmd.Flags())
	serveFlagVals.bindServerFlags(serveCmd.Flags())
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to bind (default all interfaces)")
	rootCmd.AddCommand(serveCmd)
}
