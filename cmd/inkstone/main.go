// Package main is the entry point for the Inkstone editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/inkstone/internal/app"
	"github.com/dshills/inkstone/internal/audio"
	"github.com/dshills/inkstone/internal/settings"
	"github.com/dshills/inkstone/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		settingsPath string
		logLevel     string
		showVersion  bool
	)
	flag.StringVar(&settingsPath, "settings", "", "Path to the settings file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inkstone - focused prose editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkstone [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Inkstone %s (%s)\n", version, commit)
		return 0
	}

	if settingsPath == "" {
		settingsPath = defaultSettingsPath()
	}

	logger, err := app.NewFileLogger(app.ParseLogLevel(logLevel), logPath())
	if err != nil {
		logger = app.NewLogger(app.ParseLogLevel(logLevel), os.Stderr)
	}

	_ = os.MkdirAll(filepath.Dir(settingsPath), 0o755)
	store, err := settings.Open(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open settings %s: %v\n", settingsPath, err)
		return 1
	}
	if def, err := settings.LoadDefaults(defaultsPath()); err != nil {
		logger.Warn("defaults overlay: %v", err)
	} else {
		store.SetDefaults(def)
	}

	audioCtx := audio.NewContext()
	player := audio.NewManager(audio.NewBackend(audioCtx, false), assetPath("ambient.mp3"))
	effects := audio.NewEffectSet(audioCtx)
	for name, p := range map[string]string{
		app.EffectTyping: assetPath("typing.wav"),
		app.EffectUI:     assetPath("ui.wav"),
	} {
		if err := effects.Register(name, p); err != nil {
			logger.Debug("effect %s: %v", name, err)
		}
	}

	application := app.New(
		app.WithLogger(logger),
		app.WithStore(store),
		app.WithAudio(player),
		app.WithEffects(effects),
	)
	defer application.Close()

	if err := application.StartSettingsBridge(); err != nil {
		logger.Warn("settings bridge: %v", err)
	}

	application.Bootstrap()
	for _, path := range flag.Args() {
		if err := application.OpenFile(path); err != nil {
			logger.Warn("open %s: %v", path, err)
		}
	}

	ui, err := tui.New(application)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create terminal: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Quit()
	}()

	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// defaultSettingsPath places the settings file under the user config
// directory, falling back to the working directory.
func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "inkstone-settings.json"
	}
	return filepath.Join(dir, "inkstone", "settings.json")
}

// assetPath locates a bundled asset under the user config directory.
func assetPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("assets", name)
	}
	return filepath.Join(dir, "inkstone", "assets", name)
}

// defaultsPath locates the optional distribution defaults overlay.
func defaultsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "inkstone-defaults.toml"
	}
	return filepath.Join(dir, "inkstone", "defaults.toml")
}

func logPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "inkstone.log"
	}
	return filepath.Join(dir, "inkstone", "inkstone.log")
}
