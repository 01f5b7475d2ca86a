// Package main is the entry point for the blockpad editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/plugin"
	"github.com/dshills/blockpad/internal/storage"
	"github.com/dshills/blockpad/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	dir        string
	pluginDir  string
	logLevel   string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.pluginDir != "" {
		cfg.PluginDir = opts.pluginDir
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.LogLevel),
		Output: os.Stderr,
		Prefix: "blockpad",
	})

	host := plugin.NewHost()
	defer host.Close()
	if cfg.PluginDir != "" {
		if err := host.LoadDir(cfg.PluginDir); err != nil {
			logger.Warn("loading plugins from %s: %v", cfg.PluginDir, err)
		}
	}

	session, err := app.NewSession(app.Options{
		Store:   storage.NewLocal(opts.dir),
		Config:  &cfg,
		Plugins: host,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer session.Close()

	if opts.file != "" {
		if err := session.Open(opts.file); err != nil {
			if err := session.NewDocument(opts.file); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
		}
	} else {
		if err := session.NewDocument(""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	// Reload the log level when the config file changes on disk.
	if opts.configPath != "" {
		watcher, err := config.Watch(opts.configPath, func(c config.Config) {
			logger.SetLevel(app.ParseLogLevel(c.LogLevel))
		})
		if err != nil {
			logger.Warn("config watcher: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ui, err := tui.New(session, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		session.Close()
		os.Exit(1)
	}()

	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.dir, "dir", ".", "Document directory")
	flag.StringVar(&opts.dir, "w", ".", "Document directory (shorthand)")
	flag.StringVar(&opts.pluginDir, "plugins", "", "Directory of Lua filter scripts")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Blockpad - block-structured Markdown editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blockpad [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blockpad                    Open with an empty document\n")
		fmt.Fprintf(os.Stderr, "  blockpad notes.md           Open a file\n")
		fmt.Fprintf(os.Stderr, "  blockpad -w ~/notes todo.md Open a file under a directory\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Blockpad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	if args := flag.Args(); len(args) > 0 {
		opts.file = filepath.ToSlash(args[0])
	}

	return opts
}
