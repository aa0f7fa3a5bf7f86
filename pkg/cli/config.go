package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockserver/pkg/cli/internal/output"
)

var (
	configFlagVals configFlags
	configSources  bool
)

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Config prints the configuration serve would run with after merging defaults,
config files, environment variables and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &configFlagVals)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
		if watched := cfg.WatchedHeaders(); len(watched) > 0 {
			fmt.Fprintf(out, "# watched headers: %v\n", watched)
		}
		if !configSources {
			return nil
		}

		fmt.Fprintln(out)
		tw := output.Table(out)
		fmt.Fprintln(tw, "KEY\tSOURCE")
		for _, key := range sortedKeys(cfg.Sources) {
			fmt.Fprintf(tw, "%s\t%s\n", key, cfg.Sources[key])
		}
		return tw.Flush()
	},
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	configFlagVals.bindMatchFlags(configCmd.Flags())
	configFlagVals.bindServerFlags(configCmd.Flags())
	configCmd.Flags().BoolVar(&configSources, "sources", false, "Also show where each value came from")
	rootCmd.AddCommand(configCmd)
}

