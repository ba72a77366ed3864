package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fc8/wereader-app/internal/config"
	"github.com/fc8/wereader-app/internal/configdir"
	"github.com/fc8/wereader-app/internal/shell"
	"github.com/fc8/wereader-app/internal/winstate"
	"github.com/fc8/wereader-app/internal/x11"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("wereader", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configDir := fs.String("config-dir", "", "override the config directory (default: XDG location)")
	logLevel := fs.String("log-level", "", "override log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "wereader takes no arguments")
		return 2
	}

	var resolver configdir.Resolver = configdir.XDG{}
	if *configDir != "" {
		resolver = configdir.Fixed(*configDir)
	}

	// Shell config is loud on errors; a missing config directory only
	// means there is nothing to load yet.
	cfg := config.DefaultConfig()
	if dir, err := resolver.Dir(); err == nil {
		cfg, err = config.Load(dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(level),
	}))

	fallback := winstate.Default()
	if cfg.Window.DefaultWidth > 0 && cfg.Window.DefaultHeight > 0 {
		fallback.Width = cfg.Window.DefaultWidth
		fallback.Height = cfg.Window.DefaultHeight
	}
	store := winstate.NewStore(resolver, fallback)

	conn, err := x11.NewConnection()
	if err != nil {
		logger.Error("failed to connect to X server", "error", err)
		return 1
	}
	defer conn.Close()

	win, err := x11.NewWindow(conn, cfg.Window.Title, cfg.Window.AppID, fallback.Width, fallback.Height)
	if err != nil {
		logger.Error("failed to create main window", "error", err)
		return 1
	}

	lifecycle := shell.New(win, store, logger)
	lifecycle.Restore()
	lifecycle.InstallCloseHandler()

	win.Show()
	logger.Info("window shown", "title", cfg.Window.Title, "id", win.ID())

	conn.EventLoop()
	logger.Info("shutting down")
	return 0
}

func slogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
