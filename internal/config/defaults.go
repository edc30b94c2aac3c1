package config

import (
	"embed"
	"time"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// GetDefaultYAML returns the embedded default YAML for a config name
// ("portal", "snake", "tetris", ...), or nil if none exists.
func GetDefaultYAML(name string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil
	}
	return data
}

// DefaultPortalConfig returns the hardcoded portal configuration.
func DefaultPortalConfig() PortalConfig {
	return PortalConfig{
		Server: ServerConfig{
			Addr:           ":8080",
			MetricsEnabled: true,
			AllowOrigin:    "*",
		},
		Storage: StorageConfig{
			Driver:        "sqlite",
			SQLitePath:    "~/.arcade/portal.db",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "arcade",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
			Issuer:   "arcade-portal",
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		GridSize:     25,
		FoodPoints:   10,
		FoodPerLevel: 5,
		Pacing:       PacingConfig{BaseMs: 150, StepMs: 10, FloorMs: 60},
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Cols:          10,
		Rows:          20,
		LinesPerLevel: 10,
		LineScores:    []int{0, 100, 300, 500, 800},
		Pacing:        PacingConfig{BaseMs: 800, StepMs: 70, FloorMs: 100},
	}
}

// DefaultPacmanConfig returns the default Pacman configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Lives:        3,
		DotPoints:    10,
		PelletPoints: 50,
		GhostPoints:  200,
		FrightTicks:  40,
		WanderChance: 0.25,
		FleeDistance: 8,
		LookAhead:    4,
		GhostEvery:   2,
		ReleaseEvery: 15,
		HitboxInset:  0.2,
		Pacing:       PacingConfig{BaseMs: 160, StepMs: 10, FloorMs: 80},
	}
}

// DefaultPangConfig returns the default Super Pang configuration.
func DefaultPangConfig() PangConfig {
	return PangConfig{
		Width:        120,
		Height:       60,
		Lives:        3,
		PlayerSpeed:  1.2,
		BulletSpeed:  2.0,
		MaxBullets:   2,
		Gravity:      0.06,
		BubbleSpeed:  0.5,
		PopVelocity:  1.2,
		PointsUnit:   50,
		TickMs:       16,
		TunnelLane:   true,
		SpeedPerLoop: 0.1,
		MaxSpeedMult: 2.0,
	}
}

// DefaultConnectFourConfig returns the default Connect Four configuration.
func DefaultConnectFourConfig() ConnectFourConfig {
	return ConnectFourConfig{
		Rows:        6,
		Cols:        7,
		ForkLevel:   3,
		PreferLevel: 2,
		CPUDelay:    10,
		WinPoints:   100,
		DrawPoints:  25,
		TickMs:      50,
	}
}

// DefaultArkanoidConfig returns the default Arkanoid configuration.
func DefaultArkanoidConfig() ArkanoidConfig {
	return ArkanoidConfig{
		Width:          60,
		Height:         40,
		Lives:          3,
		BallSpeed:      0.5,
		MaxBallSpeed:   1.2,
		LevelSpeedUp:   1.1,
		PaddleWidth:    8,
		PaddleSpeed:    1.0,
		MaxBounceAngle: 60,
		BallSize:       1,
		TickMs:         16,
	}
}
