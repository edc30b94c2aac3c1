package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/games/arkanoid"
	"github.com/vovakirdan/arcade-portal/internal/games/connectfour"
	"github.com/vovakirdan/arcade-portal/internal/games/pacman"
	"github.com/vovakirdan/arcade-portal/internal/games/pang"
	"github.com/vovakirdan/arcade-portal/internal/games/snake"
	"github.com/vovakirdan/arcade-portal/internal/games/tetris"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/scoreclient"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// serverLogger logs to stderr for long-running servers.
func serverLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// sessionLogger logs to a file so the alt screen stays clean. If the file
// cannot be opened, logging is dropped.
func sessionLogger() (*log.Logger, func()) {
	path := flagLogFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return log.New(io.Discard), func() {}
		}
		path = filepath.Join(home, ".arcade", "arcade.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	return logger, func() { f.Close() }
}

// loadPortalConfig reads the portal config and applies --db.
func loadPortalConfig() (config.PortalConfig, error) {
	cfg, err := config.LoadPortal(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.SQLitePath = flagDBPath
	}
	return cfg, nil
}

// openScores returns the score backend for terminal play: the remote portal
// when --portal is set, the configured repository otherwise.
func openScores() (tui.ScoreStore, func(), error) {
	if flagPortalURL != "" {
		token := flagToken
		if token == "" {
			token = os.Getenv("ARCADE_TOKEN")
		}
		if token == "" {
			return nil, nil, fmt.Errorf("--portal needs --token or ARCADE_TOKEN (see 'arcade login')")
		}
		return scoreclient.New(flagPortalURL, token), func() {}, nil
	}

	cfg, err := loadPortalConfig()
	if err != nil {
		return nil, nil, err
	}
	repo, err := storage.OpenRepository(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { repo.Close() }, nil
}

// currentUser resolves the local score user.
func currentUser() string {
	if flagUser != "" {
		return flagUser
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyGameSettings sets the difficulty preset for every game and points
// gameID at a custom tuning file. An empty gameConfig keeps the search
// order of the config package.
func applyGameSettings(gameID, gameConfig, preset string) {
	snake.SetDifficultyPreset(preset)
	tetris.SetDifficultyPreset(preset)
	pacman.SetDifficultyPreset(preset)
	pang.SetDifficultyPreset(preset)
	connectfour.SetDifficultyPreset(preset)
	arkanoid.SetDifficultyPreset(preset)

	switch gameID {
	case "snake":
		snake.SetConfigPath(gameConfig)
	case "tetris":
		tetris.SetConfigPath(gameConfig)
	case "pacman":
		pacman.SetConfigPath(gameConfig)
	case "pang":
		pang.SetConfigPath(gameConfig)
	case "connectfour":
		connectfour.SetConfigPath(gameConfig)
	case "arkanoid":
		arkanoid.SetConfigPath(gameConfig)
	}
}
