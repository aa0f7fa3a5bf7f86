package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mockserver",
	Short: "mockserver serves HTTP mocks from a directory of files",
	Long: `mockserver answers HTTP requests from a directory tree of mock files.
The request path selects a directory, and the method, watched headers, query
string and body select a file such as GET.mock or POST--id=1.mock inside it.

Configuration can be provided via flags, environment variables (MOCKSERVER_*),
a local .mockserverrc.yaml, or a global ~/.config/mockserver/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true, // errors are printed by Main
}

// Main runs the CLI with os.Args and returns the process exit code.
// Without a command, or when the first argument is a flag, serve runs.
func Main() int {
	return run(os.Args[1:])
}

func run(args []string) int {
	rootCmd.SetArgs(defaultToServe(args))
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrNotMocked) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func defaultToServe(args []string) []string {
	if len(args) == 0 {
		return []string{"serve"}
	}
	switch args[0] {
	case "-h", "--help", "--version":
		return args
	}
	if args[0] == "" || args[0][0] == '-' {
		return append([]string{"serve"}, args...)
	}
	return args
}
