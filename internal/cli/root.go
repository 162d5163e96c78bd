// Package cli implements the satchel command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/config"
	"github.com/mesh-intelligence/satchel/internal/logging"
	"github.com/mesh-intelligence/satchel/internal/model"
	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/internal/snapshot"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// app holds the global flag values and the state PersistentPreRunE
// resolves for every subcommand.
type app struct {
	configDirFlag string
	dataDirFlag   string
	jsonMode      bool

	configDir string
	dataDir   string
	cfg       *types.Config
	logger    *slog.Logger
	closeLog  func() error
}

// NewRootCmd creates the top-level "satchel" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{
		logger:   logging.Discard(),
		closeLog: func() error { return nil },
	}

	root := &cobra.Command{
		Use:   "satchel",
		Short: "A keyed value store with a processing pipeline",
		Long: "Satchel stores JSON values under string keys, runs mappings through\n" +
			"its processing transform, and answers health and data requests.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDirFlag, "config-dir", "", "configuration directory (default: .satchel)")
	root.PersistentFlags().StringVar(&a.dataDirFlag, "data-dir", "", "data directory (default: .satchel-data)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newProcessCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newRequestCmd(a))
	root.AddCommand(newRoutesCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root, a
}

// Execute runs the root command against the process arguments and returns
// the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root, a := newRoot()
	return a.execute(root, args, stdout, stderr)
}

// execute runs root and maps its error to an exit code. The log file is
// closed whether or not the command succeeded.
func (a *app) execute(root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.closeLog(); cerr != nil && err == nil {
		err = sysError("close log: %w", cerr)
	}
	if err != nil {
		fmt.Fprintln(stderr, "satchel:", err)
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return exitUserError
	}
	return exitSuccess
}

// setup resolves directories, loads the configuration, and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.configDirFlag)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		return userError("load config: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(a.dataDirFlag, cfg.DataDir)
	if err != nil {
		return sysError("resolve data dir: %w", err)
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.cfg = cfg
	a.logger, a.closeLog = logging.New(cfg.Log, cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded",
		"config_dir", configDir,
		"data_dir", dataDir,
		"environment", cfg.Environment,
	)
	return nil
}

// loadModel reads the snapshot from the data directory.
func (a *app) loadModel() (*model.DataModel, error) {
	m, err := snapshot.Load(a.dataDir)
	if err != nil {
		if errors.Is(err, types.ErrParse) {
			return nil, userError("load data: %w", err)
		}
		return nil, sysError("load data: %w", err)
	}
	return m, nil
}

// saveModel writes m back to the data directory.
func (a *app) saveModel(m *model.DataModel) error {
	if err := snapshot.Save(a.dataDir, m); err != nil {
		if errors.Is(err, types.ErrSerialization) {
			return userError("save data: %w", err)
		}
		return sysError("save data: %w", err)
	}
	return nil
}

// printMapping writes m as a single JSON line.
func printMapping(w io.Writer, m types.Mapping) error {
	b, err := m.MarshalJSON()
	if err != nil {
		return userError("encode output: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}
