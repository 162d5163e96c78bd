package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/model"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print all stored entries as one JSON object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			text, err := m.ToJSON()
			if err != nil {
				return userError("export: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace stored entries with a JSON object read from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return userError("import: %w", err)
				}
				return sysError("import: %w", err)
			}

			m, err := model.FromJSON(string(data))
			if err != nil {
				return userError("import %s: %w", args[0], err)
			}
			if err := a.saveModel(m); err != nil {
				return err
			}

			a.logger.Info("imported", "file", args[0], "entries", m.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries\n", m.Len())
			return nil
		},
	}
}
