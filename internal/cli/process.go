package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/model"
	"github.com/mesh-intelligence/satchel/internal/service"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

func newProcessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "process <json-object>",
		Short: "Run a JSON object through the processing transform",
		Long: "Parse the argument as a JSON object, run it through the processing\n" +
			"transform, and print the result. Stored entries are not changed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in types.Mapping
			if err := in.UnmarshalJSON([]byte(args[0])); err != nil {
				return userError("process: %w", err)
			}

			svc := service.New(model.New(), a.logger)
			return printMapping(cmd.OutOrStdout(), svc.ProcessData(cmd.Context(), in))
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the built-in sample input and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.InfoContext(cmd.Context(), "running sample", "environment", a.cfg.Environment)

			svc := service.New(model.New(), a.logger)
			return printMapping(cmd.OutOrStdout(), svc.RunSample(cmd.Context()))
		},
	}
}
