package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// ScoreService is the persistence collaborator of the simulation core.
type ScoreService interface {
	// HighScore returns the stored best score for (game, user), 0 if none.
	HighScore(ctx context.Context, gameID, userID string) (int, error)
	// SubmitScore records a new score for (user, game).
	SubmitScore(ctx context.Context, userID, gameID string, score int, profileHint string) error
}

// ScoreBridge loads the stored high score on game entry and submits a
// better score at most once per terminal transition. Failures never reach
// gameplay: they are logged and swallowed.
type ScoreBridge struct {
	svc       ScoreService
	gameID    string
	userID    string
	profile   string
	timeout   time.Duration
	logger    *log.Logger
	high      int
	loaded    bool
	submitted bool
}

// NewScoreBridge creates a bridge. A nil service makes every call a no-op.
func NewScoreBridge(svc ScoreService, gameID, userID, profile string, logger *log.Logger) *ScoreBridge {
	if logger == nil {
		logger = log.Default()
	}
	return &ScoreBridge{
		svc:     svc,
		gameID:  gameID,
		userID:  userID,
		profile: profile,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

// Load fetches the previously stored high score once. Errors default it to 0.
func (b *ScoreBridge) Load(ctx context.Context) int {
	if b.loaded {
		return b.high
	}
	b.loaded = true
	if b.svc == nil {
		return 0
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	high, err := b.svc.HighScore(ctx, b.gameID, b.userID)
	if err != nil {
		b.logger.Warn("could not load high score", "game", b.gameID, "user", b.userID, "error", err)
		high = 0
	}
	if high < 0 {
		high = 0
	}
	b.high = high
	return b.high
}

// HighScore returns the best known score.
func (b *ScoreBridge) HighScore() int {
	return b.high
}

// OnGameOver submits score if it beats the loaded high score. It runs at
// most once until Rearm is called. Returns whether a submission succeeded.
func (b *ScoreBridge) OnGameOver(ctx context.Context, score int) bool {
	if b.submitted {
		return false
	}
	b.submitted = true

	if b.svc == nil || score <= b.high {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.svc.SubmitScore(ctx, b.userID, b.gameID, score, b.profile); err != nil {
		b.logger.Error("score submission dropped", "game", b.gameID, "user", b.userID, "score", score, "error", err)
		return false
	}
	b.high = score
	b.logger.Info("new high score", "game", b.gameID, "user", b.userID, "score", score)
	return true
}

// Rearm allows the next terminal transition to submit again.
func (b *ScoreBridge) Rearm() {
	b.submitted = false
}
