package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a named config.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded default -> fallback.
// Files are decoded on top of the fallback so partial YAML keeps the remaining defaults.
func load[T any](name, customPath string, fallback T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath(name + ".yaml"), filepath.Join("configs", name+".yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := fallback
	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil {
		return fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadPortal loads the backend configuration and applies environment overrides
// (ARCADE_JWT_SECRET, ARCADE_MONGO_URI, ARCADE_DB_DRIVER).
func LoadPortal(customPath string) (PortalConfig, error) {
	cfg, err := load("portal", customPath, DefaultPortalConfig())
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("ARCADE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("ARCADE_MONGO_URI"); v != "" {
		cfg.Storage.MongoURI = v
	}
	if v := os.Getenv("ARCADE_DB_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	return cfg, nil
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig())
}

// LoadTetris loads Tetris configuration.
func LoadTetris(customPath string) (TetrisConfig, error) {
	return load("tetris", customPath, DefaultTetrisConfig())
}

// LoadPacman loads Pacman configuration.
func LoadPacman(customPath string) (PacmanConfig, error) {
	return load("pacman", customPath, DefaultPacmanConfig())
}

// LoadPang loads Super Pang configuration.
func LoadPang(customPath string) (PangConfig, error) {
	return load("pang", customPath, DefaultPangConfig())
}

// LoadConnectFour loads Connect Four configuration.
func LoadConnectFour(customPath string) (ConnectFourConfig, error) {
	return load("connectfour", customPath, DefaultConnectFourConfig())
}

// LoadArkanoid loads Arkanoid configuration.
func LoadArkanoid(customPath string) (ArkanoidConfig, error) {
	return load("arkanoid", customPath, DefaultArkanoidConfig())
}
