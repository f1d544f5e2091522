package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quakeditor/quake/internal/buffer"
	"github.com/quakeditor/quake/internal/config"
	"github.com/quakeditor/quake/internal/editor"
	qerrors "github.com/quakeditor/quake/internal/errors"
	"github.com/quakeditor/quake/internal/logger"
	"github.com/quakeditor/quake/internal/session"
	"github.com/quakeditor/quake/internal/terminal"
)

// DefaultFilename is edited when no file argument is given.
const DefaultFilename = "untitled.txt"

var log = logger.ComponentLogger("cmd")

type options struct {
	filename   string
	configPath string
	logFile    string
	debug      bool
}

func newRootCmd(run func(*options) error) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "quake [file]",
		Short: "A minimal terminal text editor",
		Long: `QuakEditor opens one file in the terminal for editing.
Ctrl+S saves, Ctrl+Q quits and Ctrl+D deletes the current line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.filename = DefaultFilename
			if len(args) == 1 {
				opts.filename = args[0]
			}
			return run(opts)
		},
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(versionTemplate())

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/quake/config.yaml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	return cmd
}

func versionTemplate() string {
	return fmt.Sprintf("QuakEditor Version %s\n", Version)
}

// logPath picks the log destination: the flag, then the config file, then
// a temp file when only --debug is set. Empty means logging stays off.
func logPath(opts *options, cfg *config.Config) string {
	if opts.logFile != "" {
		return opts.logFile
	}
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	if opts.debug {
		return filepath.Join(os.TempDir(), "quake-debug.log")
	}
	return ""
}

func runEditor(opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger.SetDebug(opts.debug)
	if path := logPath(opts, cfg); path != "" {
		if err := logger.Init(path); err != nil {
			return err
		}
		defer logger.Close()
	}

	eng := openEngine(opts.filename)

	t, err := terminal.Open()
	if err != nil {
		return err
	}
	return session.New(t, eng, cfg, Version).Run()
}

// openEngine loads filename into a new engine. An unreadable file still
// opens, as an empty buffer, with the read error on the status line so a
// save does not silently overwrite it.
func openEngine(filename string) *editor.Engine {
	buf, err := buffer.Load(filename)
	eng := editor.New(filename, buf)
	if err != nil {
		log.Warn("load failed", "file", filename, "error", err)
		eng.Notify(fmt.Sprintf("Could not read %s: %v", filename, qerrors.Cause(err)))
	}
	return eng
}
