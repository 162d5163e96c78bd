package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/config"
	"github.com/mesh-intelligence/satchel/internal/snapshot"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize satchel configuration and data directories",
		Long: "Create the configuration directory with a default config.yaml and the\n" +
			"data directory with an empty snapshot. Existing files are kept.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	// Record an explicit data directory as the resolved absolute path so
	// later runs from other directories find the same data.
	defaults := config.Default()
	if a.dataDirFlag != "" {
		defaults.DataDir = a.dataDir
	}

	written, err := config.EnsureFile(a.configDir, defaults)
	if err != nil {
		return sysError("init: %w", err)
	}

	// An existing snapshot is left alone; a fresh data directory gets an
	// empty one so later commands find it.
	if _, err := os.Stat(snapshot.Path(a.dataDir)); os.IsNotExist(err) {
		m, err := a.loadModel()
		if err != nil {
			return err
		}
		if err := a.saveModel(m); err != nil {
			return err
		}
	}

	a.logger.Info("initialized", "config_dir", a.configDir, "data_dir", a.dataDir, "config_written", written)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Satchel initialized successfully")
	fmt.Fprintln(out, "  config:", a.configDir)
	fmt.Fprintln(out, "  data:  ", a.dataDir)
	return nil
}
