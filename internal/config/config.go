// Package config provides YAML-based configuration loading for the portal
// and per-game tuning, plus difficulty pacing.
package config

import "time"

// PortalConfig configures the REST backend and the score bridge.
type PortalConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	AllowOrigin    string `yaml:"allow_origin"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver        string `yaml:"driver"` // "sqlite" or "mongo"
	SQLitePath    string `yaml:"sqlite_path"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

// AuthConfig defines token issuance.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	Issuer    string        `yaml:"issuer"`
}

// PacingConfig defines how the tick interval shrinks as the level grows.
type PacingConfig struct {
	BaseMs  int `yaml:"base_ms"`  // Interval at level 1
	StepMs  int `yaml:"step_ms"`  // Reduction per level
	FloorMs int `yaml:"floor_ms"` // Never go below this
}

// SnakeConfig tunes the Snake game.
type SnakeConfig struct {
	GridSize     int          `yaml:"grid_size"`
	FoodPoints   int          `yaml:"food_points"`
	FoodPerLevel int          `yaml:"food_per_level"`
	Pacing       PacingConfig `yaml:"pacing"`
}

// TetrisConfig tunes the Tetris game.
type TetrisConfig struct {
	Cols          int          `yaml:"cols"`
	Rows          int          `yaml:"rows"`
	LinesPerLevel int          `yaml:"lines_per_level"`
	LineScores    []int        `yaml:"line_scores"` // indexed by lines cleared at once
	Pacing        PacingConfig `yaml:"pacing"`
}

// PacmanConfig tunes the Pacman game.
type PacmanConfig struct {
	Lives         int          `yaml:"lives"`
	DotPoints     int          `yaml:"dot_points"`
	PelletPoints  int          `yaml:"pellet_points"`
	GhostPoints   int          `yaml:"ghost_points"`
	FrightTicks   int          `yaml:"fright_ticks"`
	WanderChance  float64      `yaml:"wander_chance"`
	FleeDistance  int          `yaml:"flee_distance"`
	LookAhead     int          `yaml:"look_ahead"`
	GhostEvery    int          `yaml:"ghost_every"` // Ghost moves every N ticks at level 1
	ReleaseEvery  int          `yaml:"release_every"`
	HitboxInset   float64      `yaml:"hitbox_inset"`
	Pacing        PacingConfig `yaml:"pacing"`
}

// PangConfig tunes the Super Pang game.
type PangConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Lives        int     `yaml:"lives"`
	PlayerSpeed  float64 `yaml:"player_speed"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	MaxBullets   int     `yaml:"max_bullets"`
	Gravity      float64 `yaml:"gravity"`
	BubbleSpeed  float64 `yaml:"bubble_speed"`
	PopVelocity  float64 `yaml:"pop_velocity"`
	PointsUnit   int     `yaml:"points_unit"`
	TickMs       int     `yaml:"tick_ms"`
	TunnelLane   bool    `yaml:"tunnel_lane"`
	SpeedPerLoop float64 `yaml:"speed_per_loop"`
	MaxSpeedMult float64 `yaml:"max_speed_mult"`
}

// ConnectFourConfig tunes the Connect Four game.
type ConnectFourConfig struct {
	Rows        int `yaml:"rows"`
	Cols        int `yaml:"cols"`
	ForkLevel   int `yaml:"fork_level"`
	PreferLevel int `yaml:"prefer_level"`
	CPUDelay    int `yaml:"cpu_delay"` // Ticks the CPU "thinks" before replying
	WinPoints   int `yaml:"win_points"`
	DrawPoints  int `yaml:"draw_points"`
	TickMs      int `yaml:"tick_ms"`
}

// ArkanoidConfig tunes the Arkanoid game.
type ArkanoidConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Lives          int     `yaml:"lives"`
	BallSpeed      float64 `yaml:"ball_speed"`
	MaxBallSpeed   float64 `yaml:"max_ball_speed"`
	LevelSpeedUp   float64 `yaml:"level_speed_up"`
	PaddleWidth    float64 `yaml:"paddle_width"`
	PaddleSpeed    float64 `yaml:"paddle_speed"`
	MaxBounceAngle float64 `yaml:"max_bounce_angle"` // Degrees from vertical
	BallSize       float64 `yaml:"ball_size"`
	TickMs         int     `yaml:"tick_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values map to "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	}
	return ""
}
