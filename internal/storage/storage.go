// Package storage persists portal users, per-user high scores, reactions,
// favorites and message boards. Two backends implement Repository: SQLite
// (default, pure Go) and MongoDB.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits shared by every backend.
const (
	LeaderboardMax   = 10  // Entries kept on a game leaderboard
	MaxMessageLen    = 500 // Characters per message
	DefaultMessages  = 50
	MaxMessagesLimit = 200
)

var (
	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("storage: not found")
	// ErrUserExists is returned when an email is already registered.
	ErrUserExists = errors.New("storage: user already exists")
	// ErrInvalidMessage is returned for empty or oversized message text.
	ErrInvalidMessage = errors.New("storage: message must be 1 to 500 characters")
	// ErrInvalidReaction is returned for a reaction kind other than like or dislike.
	ErrInvalidReaction = errors.New("storage: unknown reaction")
)

// User is a registered portal account.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// ScoreEntry is one leaderboard row: a user's best score for a game.
type ScoreEntry struct {
	UserID    string
	Username  string
	GameID    string
	Score     int
	Profile   string
	UpdatedAt time.Time
}

// Reaction is a user's opinion of a game.
type Reaction string

const (
	ReactionNone    Reaction = ""
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Valid reports whether r can be stored.
func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// ReactionCounts aggregates reactions for one game.
type ReactionCounts struct {
	Likes    int
	Dislikes int
}

// Message is a post on a game's message board.
type Message struct {
	ID        string
	GameID    string
	UserID    string
	Username  string
	Text      string
	CreatedAt time.Time
}

// Repository is the persistence contract of the portal. Both backends
// satisfy the two-operation score interface of the engine through
// HighScore and SubmitScore.
type Repository interface {
	CreateUser(ctx context.Context, email, username, passwordHash string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)

	HighScore(ctx context.Context, gameID, userID string) (int, error)
	SubmitScore(ctx context.Context, userID, gameID string, score int, profile string) error
	Leaderboard(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)

	React(ctx context.Context, userID, gameID string, kind Reaction) (Reaction, error)
	Reactions(ctx context.Context, gameID string) (ReactionCounts, error)
	AllReactions(ctx context.Context) (map[string]ReactionCounts, error)

	PostMessage(ctx context.Context, gameID, userID, text string) (Message, error)
	Messages(ctx context.Context, gameID string, limit int) ([]Message, error)

	ToggleFavorite(ctx context.Context, userID, gameID string) (bool, error)
	Favorites(ctx context.Context, userID string) ([]string, error)

	Close() error
}

// normalizeEmail lowercases and trims an address for lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// leaderboardLimit clamps a requested size into 1..LeaderboardMax.
func leaderboardLimit(limit int) int {
	if limit <= 0 || limit > LeaderboardMax {
		return LeaderboardMax
	}
	return limit
}

// messagesLimit clamps a requested page size.
func messagesLimit(limit int) int {
	if limit <= 0 {
		return DefaultMessages
	}
	return min(limit, MaxMessagesLimit)
}

// ValidateMessage trims text and checks its length in characters.
func ValidateMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n == 0 || n > MaxMessageLen {
		return "", ErrInvalidMessage
	}
	return text, nil
}
