package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockserver/internal/matching"
	"github.com/getmockd/mockserver/internal/mockfs"
	"github.com/getmockd/mockserver/pkg/logging"
	"github.com/getmockd/mockserver/pkg/mock"
	"github.com/getmockd/mockserver/pkg/mockfile"
	"github.com/getmockd/mockserver/pkg/resolver"
)

var (
	resolveFlagVals configFlags
	resolveMethod   string
	resolveBody     string
	resolveBodyFile string
	resolveHeaders  []string
)

// resolveCmd answers one request from the mock directory without a listener.
var resolveCmd = &cobra.Command{
	Use:   "resolve <path[?query]>",
	Short: "Resolve one request offline and print the rendered mock",
	Long: `Resolve picks the mock file the server would answer a request with, renders
it, and prints the file, the matching stage, the status, the headers and the
body. It exits with status 1 when the request is not mocked.`,
	Example: `  # Which file answers GET /users?id=1?
  mockserver resolve --dir ./mocks "/users?id=1"

  # A POST with a body and a watched header
  mockserver resolve -m ./mocks -X POST --body '{"a":1}' \
      -H Authorization --request-header "Authorization: Bearer t" /login`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &resolveFlagVals)
		if err != nil {
			return err
		}
		if cfg.MockDir == "" {
			return ErrMockDirMissing
		}

		body := resolveBody
		if resolveBodyFile != "" {
			data, err := os.ReadFile(resolveBodyFile)
			if err != nil {
				return fmt.Errorf("failed to read body file: %w", err)
			}
			body = string(data)
		}

		req, err := buildRequest(resolveMethod, args[0], body, resolveHeaders)
		if err != nil {
			return err
		}
		req.HeaderTokens = matching.SelectHeaders(req.Header, cfg.WatchedHeaders())

		log := logging.Nop()
		if cfg.Verbose {
			log = logging.New(logging.Config{
				Level:  logging.LevelInfo,
				Format: logging.ParseFormat(cfg.LogFormat),
				Output: cmd.ErrOrStderr(),
			})
		}
		res := resolver.New(mockfs.New(cfg.MockDir), resolver.WithLogger(log), resolver.WithVerbose(cfg.Verbose))
		return resolveAndPrint(cmd.OutOrStdout(), res, req)
	},
}

// buildRequest turns command-line input into the request descriptor the
// server would build for the same HTTP request.
func buildRequest(method, target, body string, headers []string) (*mock.Request, error) {
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	r, err := http.NewRequest(strings.ToUpper(method), target, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid request target %q: %w", target, err)
	}
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid request header %q: expected \"Name: value\"", h)
		}
		r.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return mock.NewRequest(r, []byte(body)), nil
}

func resolveAndPrint(w io.Writer, res *resolver.Resolver, req *mock.Request) error {
	match, err := res.Resolve(req)
	if err != nil {
		return err
	}
	if match == nil {
		fmt.Fprintln(w, "Not Mocked")
		return ErrNotMocked
	}

	resp, err := mockfile.Parse(match.Content, res.Index().Dir(match.Dir), req)
	if err != nil {
		return fmt.Errorf("invalid mock %s: %w", match.Path, err)
	}

	fmt.Fprintf(w, "file: %s\n", strings.TrimPrefix(path.Join(match.Dir, match.File), "/"))
	fmt.Fprintf(w, "stage: %s\n", match.Stage)
	if match.Wildcard {
		fmt.Fprintln(w, "wildcard: true")
	}
	fmt.Fprintf(w, "status: %d\n", resp.Status)
	names := make([]string, 0, len(resp.Headers))
	for name := range resp.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range resp.Headers[name] {
			fmt.Fprintf(w, "%s: %s\n", name, v)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, resp.Body)
	return nil
}

func init() {
	resolveFlagVals.bindMatchFlags(resolveCmd.Flags())
	resolveCmd.Flags().StringVar(&resolveFlagVals.logFormat, "log-format", "text", "Format of verbose output (text, json)")
	resolveCmd.Flags().StringVarP(&resolveMethod, "method", "X", http.MethodGet, "Request method")
	resolveCmd.Flags().StringVar(&resolveBody, "body", "", "Request body")
	resolveCmd.Flags().StringVar(&resolveBodyFile, "body-file", "", "Read the request body from a file")
	resolveCmd.Flags().StringArrayVar(&resolveHeaders, "request-header", nil, "Request header as \"Name: value\" (repeatable)")
	rootCmd.AddCommand(resolveCmd)
}
