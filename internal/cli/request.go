package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/api"
	"github.com/mesh-intelligence/satchel/internal/model"
	"github.com/mesh-intelligence/satchel/internal/service"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// newRouter wires the standard routes over m.
func (a *app) newRouter(m *model.DataModel) (*api.Router, error) {
	router := api.NewRouter(
		api.WithLogger(a.logger),
		api.WithRateLimit(a.cfg.RateLimit),
	)
	handlers := api.NewHandlers(service.New(m, a.logger), m)
	if err := api.SetupRoutes(router, handlers, a.logger); err != nil {
		return nil, sysError("setup routes: %w", err)
	}
	return router, nil
}

func newRequestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "request <method> <path> [body]",
		Short: "Dispatch a request through the route table and print the response",
		Long: "Build a request from METHOD, PATH, and an optional JSON BODY, dispatch\n" +
			"it to the registered handler, and print the response. Error responses\n" +
			"are printed and exit with status 1.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}
			router, err := a.newRouter(m)
			if err != nil {
				return err
			}

			req := api.Request{Method: args[0], Path: args[1]}
			if len(args) == 3 {
				req.Body = []byte(args[2])
			}

			resp := router.Dispatch(cmd.Context(), req)
			if err := printMapping(cmd.OutOrStdout(), resp.ToMapping()); err != nil {
				return err
			}
			if resp.IsError() {
				return userError("request: %s", resp.Error)
			}
			return nil
		},
	}
}

func newRoutesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the registered routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := a.newRouter(model.New())
			if err != nil {
				return err
			}
			routes := router.Routes()

			if a.jsonMode {
				vs := make([]types.Value, len(routes))
				for i, r := range routes {
					vs[i] = types.Map(types.Mapping{
						"method": types.String(r.Method),
						"path":   types.String(r.Path),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), types.List(vs...).String())
				return nil
			}
			for _, r := range routes {
				fmt.Fprintln(cmd.OutOrStdout(), r.String())
			}
			return nil
		},
	}
}
