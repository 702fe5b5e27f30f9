// Package cli wires config, storage and logging together behind the
// tasklist command. With no subcommand it starts the terminal UI.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/logging"
	"tasklist/internal/storage"
	"tasklist/internal/tasks"
	"tasklist/internal/ui"
)

type options struct {
	configPath string
	dbPath     string
}

// session holds everything a command needs for one run.
type session struct {
	cfg      config.Config
	kv       *storage.Store
	log      *slog.Logger
	closeLog func() error
}

func (s *session) Close() {
	if err := s.kv.Close(); err != nil {
		s.log.Error("closing database", "err", err)
	}
	if err := s.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
	}
}

// open loads config, logging and storage. Only the UI session truncates the
// log; the other commands append so they never wipe a running UI's entries.
func (o *options) open(truncateLog bool) (*session, error) {
	path := o.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}

	logger, closeLog, err := logging.Setup(cfg.LogPath, slog.LevelDebug, truncateLog)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	kv, err := storage.Open(cfg.DBPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Info("session opened", "config", path, "db", cfg.DBPath, "key", cfg.StorageKey)

	return &session{cfg: cfg, kv: kv, log: logger, closeLog: closeLog}, nil
}

// store builds a task store that renders to view.
func (s *session) store(view tasks.View) *tasks.Store {
	return tasks.NewStore(s.kv, s.cfg.StorageKey, view, tasks.WithLogger(s.log))
}

// shownError marks an error the view has already printed.
type shownError struct {
	err error
}

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err: err}
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "tasklist",
		Short:         "A small persistent task list",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $TASKLIST_CONFIG or the user config dir)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file, overrides db_path from the config")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newToggleCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newClearDoneCmd(opts),
		newResetCmd(opts),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var se shownError
		if !errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func runTUI(opts *options) error {
	sess, err := opts.open(true)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.log.Info("starting ui")
	if err := ui.Run(sess.kv, sess.cfg, sess.log); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
