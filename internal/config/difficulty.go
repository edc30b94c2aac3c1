package config

import "time"

// Interval returns the tick interval for the given level (1-based).
// The interval shrinks by StepMs per level and never drops below FloorMs.
func (p PacingConfig) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	ms := p.BaseMs - p.StepMs*(level-1)
	if ms < p.FloorMs {
		ms = p.FloorMs
	}
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// WithPreset returns a copy of the pacing adjusted for a difficulty preset.
// Easy slows the base interval down, hard speeds it up, fixed disables the
// per-level speed-up.
func (p PacingConfig) WithPreset(preset DifficultyPreset) PacingConfig {
	switch preset {
	case DifficultyEasy:
		p.BaseMs = p.BaseMs * 5 / 4
	case DifficultyHard:
		p.BaseMs = max(p.FloorMs, p.BaseMs*3/4)
	case DifficultyFixed:
		p.StepMs = 0
	}
	return p
}

// TickInterval converts a millisecond setting to a duration, defaulting to 60 Hz.
func TickInterval(ms int) time.Duration {
	if ms <= 0 {
		return time.Second / 60
	}
	return time.Duration(ms) * time.Millisecond
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Pacing = cfg.Pacing.WithPreset(preset)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	cfg.Pacing = cfg.Pacing.WithPreset(preset)
}

// ApplyPacmanPreset modifies the config based on a difficulty preset.
func ApplyPacmanPreset(cfg *PacmanConfig, preset DifficultyPreset) {
	cfg.Pacing = cfg.Pacing.WithPreset(preset)
	switch preset {
	case DifficultyEasy:
		cfg.Lives = 5
		cfg.FrightTicks = cfg.FrightTicks * 3 / 2
	case DifficultyHard:
		cfg.Lives = 2
		cfg.FrightTicks = cfg.FrightTicks / 2
	}
}

// ApplyPangPreset modifies the config based on a difficulty preset.
func ApplyPangPreset(cfg *PangConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Lives = 5
		cfg.BubbleSpeed *= 0.8
	case DifficultyHard:
		cfg.Lives = 2
		cfg.BubbleSpeed *= 1.25
	case DifficultyFixed:
		cfg.SpeedPerLoop = 0
	}
}

// ApplyConnectFourPreset modifies the config based on a difficulty preset.
func ApplyConnectFourPreset(cfg *ConnectFourConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.ForkLevel += 2
		cfg.PreferLevel++
	case DifficultyHard:
		cfg.ForkLevel = 1
		cfg.PreferLevel = 1
	}
}

// ApplyArkanoidPreset modifies the config based on a difficulty preset.
func ApplyArkanoidPreset(cfg *ArkanoidConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Lives = 5
		cfg.PaddleWidth += 2
		cfg.BallSpeed *= 0.8
	case DifficultyHard:
		cfg.Lives = 2
		cfg.PaddleWidth -= 2
		cfg.BallSpeed *= 1.3
	case DifficultyFixed:
		cfg.LevelSpeedUp = 1
	}
}
