// Package cmd implements the CLI command structure for colortasks.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/colortasks/internal/config"
	"github.com/nibzard/colortasks/internal/kv"
	"github.com/nibzard/colortasks/internal/logging"
	"github.com/nibzard/colortasks/internal/store"
	"github.com/nibzard/colortasks/internal/task"
	"github.com/nibzard/colortasks/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// IO bundles the streams a command reads and writes.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// app carries the resolved configuration into subcommands.
type app struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger
	io     IO
	styles ui.Styles
	now    func() time.Time
}

// Run executes the colortasks CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return Execute(ctx, args, IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// Execute runs the CLI with explicit streams.
func Execute(ctx context.Context, args []string, streams IO) error {
	fs := flag.NewFlagSet("colortasks", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	fs.Usage = func() {
		printUsage(fs, streams.Err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, streams.Out)
		return nil
	}
	if *showVersion {
		return versionCommand(streams.Out)
	}

	logOpts := cws.Config.LoggingOptions()
	logOpts.Output = streams.Err
	logger, err := logging.New(logOpts)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a := &app{
		cws:    cws,
		cfg:    cws.Config,
		logger: logger,
		io:     streams,
		styles: ui.NewStyles(lipgloss.NewRenderer(streams.Out)),
		now:    time.Now,
	}

	// If no args or first arg is a flag, use "list" as default
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "toggle", "done":
		return a.toggleCommand(remainingArgs)
	case "rm", "remove", "delete":
		return a.removeCommand(remainingArgs)
	case "overdue":
		return a.overdueCommand(remainingArgs)
	case "colors":
		return a.colorsCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return versionCommand(streams.Out)
	case "help":
		printUsage(fs, streams.Out)
		return nil
	default:
		fmt.Fprintf(streams.Err, "Unknown command: %s\n", subcommand)
		printUsage(fs, streams.Err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openRepository opens the configured backend and loads the task list. If
// the backend cannot be opened the repository still works in memory and
// nothing is saved.
func (a *app) openRepository() (*task.Repository, *store.Store, func()) {
	codec, err := store.CodecFor(a.cfg.Format)
	if err != nil {
		codec = store.JSONCodec{}
	}
	backend, err := kv.Open(a.cfg.Backend, a.cfg.DataDir)
	if err != nil {
		a.logger.Warn("storage unavailable, changes will not be saved", "dir", a.cfg.DataDir, "err", err)
		backend = nil
	}
	st := store.New(backend, a.cfg.StorageKey, store.WithCodec(codec), store.WithLogger(a.logger))
	closeFn := func() {
		if backend == nil {
			return
		}
		if err := backend.Close(); err != nil {
			a.logger.Warn("closing storage", "err", err)
		}
	}
	return task.NewRepository(st), st, closeFn
}

// tuiCommand launches the TUI.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.flagSet("tui")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	repo, _, closeFn := a.openRepository()
	defer closeFn()
	return ui.Run(ctx, repo, ui.Options{
		DefaultColor:  a.cfg.Color(),
		ConfirmDelete: a.cfg.ConfirmDelete,
		Now:           a.now,
	})
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("colortasks "+name, flag.ContinueOnError)
	fs.SetOutput(a.io.Err)
	return fs
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "colortasks version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "colortasks - A color-coded task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  colortasks [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list            List tasks grouped by color (default command)")
	fmt.Fprintln(w, "  add <text>      Add a task")
	fmt.Fprintln(w, "  toggle <ref>    Toggle a task between open and completed (alias: done)")
	fmt.Fprintln(w, "  rm <ref>        Delete a task")
	fmt.Fprintln(w, "  overdue         List overdue tasks")
	fmt.Fprintln(w, "  colors          List the available colors")
	fmt.Fprintln(w, "  tui             Launch terminal UI")
	fmt.Fprintln(w, "  doctor          Check config and stored tasks")
	fmt.Fprintln(w, "  config          Show the effective configuration")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A <ref> is a list position (1, 2, ...), a task id, or an id prefix of at least 4 characters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -flat")
	fmt.Fprintln(w, "        List in insertion order instead of by color")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -color string")
	fmt.Fprintln(w, "        Task color (default|red|blue|green|yellow)")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date (YYYY-MM-DD)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rm Options (use with 'rm' command):")
	fmt.Fprintln(w, "  -y    Delete without asking")
}
