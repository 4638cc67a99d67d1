package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vidyasagar/swb/internal/app"
	"github.com/vidyasagar/swb/internal/chrome"
	"github.com/vidyasagar/swb/internal/config"
	"github.com/vidyasagar/swb/internal/logging"
	"github.com/vidyasagar/swb/internal/remote"
	"github.com/vidyasagar/swb/internal/storage"
	"github.com/vidyasagar/swb/internal/theme"
)

var version = "0.1.0"

const syncTimeout = 15 * time.Second

func main() {
	var (
		themeName   string
		logLevel    string
		showVersion bool
	)

	flag.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "swb - a small web browser for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: swb [flags] [url]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  swb                       # open the configured start page\n")
		fmt.Fprintf(os.Stderr, "  swb https://example.com   # open a URL\n")
		fmt.Fprintf(os.Stderr, "  swb golang.org            # auto-adds https://\n")
		fmt.Fprintf(os.Stderr, "  swb --theme gruvbox       # pick a theme\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("swb %s\n", version)
		os.Exit(0)
	}

	dataDir, err := storage.DataDir()
	if err != nil {
		// Logging and history degrade; browsing still works.
		dataDir = ""
	}
	log := logging.New(dataDir, logging.ParseLevel(logLevel))
	defer log.Sync()

	cfg := config.LoadOrDefault(log)

	// The flag wins over the config file.
	if themeName == "" {
		themeName = cfg.Theme
	}
	if themeName != "" && !theme.Set(themeName) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", themeName, strings.Join(theme.List(), ", "))
		os.Exit(1)
	}

	if !cfg.Local {
		syncBookmarks(&cfg, log)
	}

	visits, err := storage.Open(dataDir)
	if err != nil {
		log.Warn("history database unavailable", zap.Error(err))
		visits = nil
	} else {
		defer visits.Close()
	}

	startPage := cfg.StartPage
	if flag.NArg() > 0 {
		startPage = flag.Arg(0)
	}

	menu := chrome.Materialize(cfg.Folders())

	queue := chrome.NewQueue()
	engine := app.NewEngine(queue, cfg.SearchEngine, log)
	dispatcher := chrome.NewDispatcher(queue, startPage, cfg.SearchEngine, chrome.Sinks{
		Nav:     engine,
		Address: engine,
		Login:   engine,
		Notify:  engine,
	}, log)

	m := app.New(queue, engine, menu, visits, cfg.Local, log)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	engine.SetSender(p.Send)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Run(ctx)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// syncBookmarks pulls the bookmark folders from the configured sync
// endpoint and persists them into the config file, so the next offline
// start still has them. Any failure keeps the bookmarks already on
// disk.
func syncBookmarks(cfg *config.Config, log *zap.Logger) {
	if cfg.SyncURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	folders, err := remote.NewClient(cfg.SyncURL).FetchBookmarks(ctx)
	if err != nil {
		log.Warn("bookmark sync failed, using cached bookmarks", zap.Error(err))
		return
	}
	cfg.Bookmarks = folders

	path, err := config.Path()
	if err != nil {
		log.Warn("cannot persist synced bookmarks", zap.Error(err))
		return
	}
	if err := cfg.Save(path); err != nil {
		log.Warn("cannot persist synced bookmarks", zap.String("path", path), zap.Error(err))
	}
	log.Info("bookmarks synced", zap.Int("folders", len(folders)))
}
