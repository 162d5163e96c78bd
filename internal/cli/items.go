package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// checkKey rejects the empty key.
func checkKey(key string) error {
	if key == "" {
		return userError("key must not be empty")
	}
	return nil
}

// parseValueArg reads raw as JSON. Anything that is not valid JSON is
// stored as a plain string.
func parseValueArg(raw string) types.Value {
	var v types.Value
	if err := v.UnmarshalJSON([]byte(raw)); err != nil {
		return types.String(raw)
	}
	return v
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <key> <value>",
		Short: "Store a value under a key",
		Long: "Store VALUE under KEY, replacing any existing value. VALUE is parsed\n" +
			"as JSON; text that is not JSON is stored as a string.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], parseValueArg(args[1])
			if err := checkKey(key); err != nil {
				return err
			}

			m, err := a.loadModel()
			if err != nil {
				return err
			}
			m.AddItem(key, value)
			if err := a.saveModel(m); err != nil {
				return err
			}

			if a.jsonMode {
				return printMapping(cmd.OutOrStdout(), types.Mapping{
					"key":   types.String(key),
					"value": value,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", key)
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := checkKey(key); err != nil {
				return err
			}

			m, err := a.loadModel()
			if err != nil {
				return err
			}
			v, ok := m.GetItem(key)
			if !ok {
				return userError("key %q not found", key)
			}

			if a.jsonMode {
				return printMapping(cmd.OutOrStdout(), types.Mapping{
					"key":   types.String(key),
					"value": v,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a key",
		Long:  "Remove KEY if present. Removing an absent key is not an error.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := checkKey(key); err != nil {
				return err
			}

			m, err := a.loadModel()
			if err != nil {
				return err
			}
			removed := m.RemoveItem(key)
			if removed {
				if err := a.saveModel(m); err != nil {
					return err
				}
			}

			if a.jsonMode {
				return printMapping(cmd.OutOrStdout(), types.Mapping{
					"key":     types.String(key),
					"removed": types.Bool(removed),
				})
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", key)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Key %s not present\n", key)
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored keys in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel()
			if err != nil {
				return err
			}

			var keys []string
			if prefix != "" {
				keys = m.ListPrefix(prefix)
			} else {
				keys = m.ListItems()
			}

			if a.jsonMode {
				vs := make([]types.Value, len(keys))
				for i, k := range keys {
					vs[i] = types.String(k)
				}
				fmt.Fprintln(cmd.OutOrStdout(), types.List(vs...).String())
				return nil
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list keys starting with this prefix")
	return cmd
}
