// Package cli wires the todo command line: the interactive list when run
// without a subcommand, and scriptable subcommands otherwise.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/store/jsonstore"
	"github.com/idilsaglam/todo/internal/store/memstore"
	"github.com/idilsaglam/todo/internal/store/sqlitestore"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/tui"
	"github.com/idilsaglam/todo/internal/ui"
)

const logFileName = "todo.log"

// App holds root flag values and the config resolved from them.
type App struct {
	ConfigPath string
	Dir        string
	Backend    string
	Key        string
	LogLevel   string
	Theme      string
	Strict     bool

	cfg *config.Config

	// kv, when set, is used instead of opening the configured backend.
	kv store.KV
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A small local to-do list (TUI + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		Example: strings.TrimSpace(`
  # Start the interactive list
  todo

  # Scriptable commands
  todo add Buy milk
  todo ls --group
  todo done 2
  todo rm 3
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "Config file (.yaml, .yml or .toml)")
	f.StringVar(&app.Dir, "dir", "", "Directory holding the list (default: working directory)")
	f.StringVar(&app.Backend, "backend", "", "Storage backend (file|sqlite|memory)")
	f.StringVar(&app.Key, "key", "", "Storage key the list is kept under")
	f.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	f.StringVar(&app.Theme, "theme", "", "Color theme ("+strings.Join(ui.ThemeNames(), "|")+")")
	f.BoolVar(&app.Strict, "strict", false, "Fail instead of starting empty when the stored list is corrupt")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErr(err)
	})

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	return execute(ctx, cmd, args, stdout, stderr)
}

func execute(ctx context.Context, cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	if errors.Is(err, todo.ErrInvalidPosition) {
		ui.Hint(stderr, "Hint: run `todo ls` to see valid indexes")
	}
	return ExitCode(err)
}

func (app *App) loadConfig(cmd *cobra.Command) error {
	var o config.Overrides
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	if changed("dir") {
		o.Dir = &app.Dir
	}
	if changed("backend") {
		o.Backend = &app.Backend
	}
	if changed("key") {
		o.Key = &app.Key
	}
	if changed("log-level") {
		o.LogLevel = &app.LogLevel
	}
	if changed("theme") {
		o.Theme = &app.Theme
	}
	if changed("strict") {
		o.Strict = &app.Strict
	}

	cfg, err := config.Load(app.ConfigPath, o)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return usageErr(err)
		}
		return err
	}
	app.cfg = cfg
	ui.SetTheme(cfg.Theme)
	return nil
}

func (app *App) openKV(ctx context.Context) (store.KV, error) {
	if app.kv != nil {
		return app.kv, nil
	}
	dir := app.cfg.Storage.Dir
	switch app.cfg.Storage.Backend {
	case store.BackendSQLite:
		s, err := sqlitestore.Open(ctx, dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case store.BackendMemory:
		return memstore.New(), nil
	default:
		s, err := jsonstore.New(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// session bundles what one command invocation opens.
type session struct {
	store  *todo.Store
	logger *log.Logger
	close  func()
}

// openStore opens the backend and loads the list. logTo is where the logger
// writes when no log file is configured; nil means <dir>/todo.log.
func openStore(cmd *cobra.Command, app *App, logTo io.Writer) (*session, error) {
	ctx := cmd.Context()

	var (
		logger   *log.Logger
		logClose io.Closer
		err      error
	)
	switch {
	case app.cfg.Log.File == "" && logTo != nil:
		logger, err = logging.New(logTo, app.cfg.Log)
	default:
		logger, logClose, err = logging.Open(app.cfg.Log, filepath.Join(app.cfg.Storage.Dir, logFileName))
	}
	if err != nil {
		return nil, err
	}

	kv, err := app.openKV(ctx)
	if err != nil {
		closeQuietly(logClose)
		return nil, fmt.Errorf("open %s storage: %w", app.cfg.Storage.Backend, err)
	}
	closeAll := func() {
		if app.kv == nil {
			if err := kv.Close(); err != nil {
				logger.Warn("close storage", "err", err)
			}
		}
		closeQuietly(logClose)
	}

	s := todo.NewStore(kv,
		todo.WithKey(app.cfg.Storage.Key),
		todo.WithLogger(logger),
		todo.WithStrictLoad(app.cfg.StrictLoad),
	)
	if err := s.Initialize(ctx); err != nil {
		closeAll()
		return nil, fmt.Errorf("load list: %w", err)
	}
	return &session{store: s, logger: logger, close: closeAll}, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	sess, err := openStore(cmd, app, nil)
	if err != nil {
		return err
	}
	defer sess.close()
	return tui.Run(cmd.Context(), sess.store, sess.logger)
}
