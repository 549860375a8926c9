// Package cli implements the tada command line: the interactive list by
// default, a line-oriented shell, and version.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/ids"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Version is set at build time.
var Version = "dev"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// app is what every subcommand runs against.
type app struct {
	theme  ui.Theme
	list   *todo.List
	logger *log.Logger
	closer io.Closer
}

// NewRootCmd creates the top-level "tada" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:          "tada",
		Short:        "A tiny in-memory todo list",
		Long:         "tada keeps a todo list for the lifetime of one session.\nNothing is written to disk.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(v, nil)
			if err != nil {
				return err
			}
			defer a.closer.Close()
			return tui.Run(a.list, a.theme, a.logger)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config-dir", "", "directory holding config.yaml (default "+config.DefaultDir()+")")
	pf.String("theme", "", "color theme: classic, neon, mono")
	pf.String("ids", "", "id generator: counter, ulid, uuid")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "append logs to this file")
	pf.Bool("no-color", false, "disable colors")
	bindFlags(v, root)

	root.AddCommand(newShellCmd(v))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for key, flag := range map[string]string{
		config.KeyConfigDir: "config-dir",
		config.KeyTheme:     "theme",
		config.KeyIDs:       "ids",
		config.KeyLogLevel:  "log-level",
		config.KeyLogFile:   "log-file",
		config.KeyNoColor:   "no-color",
	} {
		// only errors on a nil flag
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
	}
}

// setup resolves configuration and builds the list. logOut receives logs
// when no log file is configured.
func setup(v *viper.Viper, logOut io.Writer) (*app, error) {
	dir := config.Dir(v)
	cfg, err := config.Load(v, dir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.NoColor {
		ui.DisableColor()
	}
	theme, err := ui.ThemeByName(cfg.Theme)
	if err != nil {
		return nil, err
	}
	gen, err := ids.New(cfg.IDs)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		File:     cfg.LogFile,
		Fallback: logOut,
	})
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	l := todo.New(gen)
	l.Subscribe(todo.LogChanges(logger))
	logger.Debug("configured", "theme", theme.Name, "ids", cfg.IDs, "config_dir", dir)

	return &app{theme: theme, list: l, logger: logger, closer: closer}, nil
}
