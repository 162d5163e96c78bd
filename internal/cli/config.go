package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/satchel/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, config.yaml, .env, and the\nenvironment are applied. The secret key is redacted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Redacted(*a.cfg)
			cfg.DataDir = a.dataDir

			if a.jsonMode {
				out, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return sysError("marshal JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			out, err := yaml.Marshal(&cfg)
			if err != nil {
				return sysError("marshal YAML: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# config dir: %s\n%s", a.configDir, out)
			return nil
		},
	}
}
