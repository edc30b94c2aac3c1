package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-portal/internal/engine"
)

// sqliteTime is the layout timestamps are written in.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ Repository          = (*Store)(nil)
	_ engine.ScoreService = (*Store)(nil)
)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer keeps SQLite from reporting SQLITE_BUSY under the API.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS high_scores (
			user_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			profile TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL,
			PRIMARY KEY (user_id, game_id)
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS reactions (
			user_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('like', 'dislike')),
			PRIMARY KEY (user_id, game_id)
		);
		CREATE INDEX IF NOT EXISTS idx_reactions_game ON reactions(game_id);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			username TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_game ON messages(game_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS favorites (
			user_id TEXT NOT NULL,
			game_id TEXT NOT NULL,
			PRIMARY KEY (user_id, game_id)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime reads a timestamp column. The driver may hand back either a
// time.Time or the stored text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// CreateUser registers a new account.
func (s *Store) CreateUser(ctx context.Context, email, username, passwordHash string) (User, error) {
	u := User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		CreatedAt:    s.now().Truncate(time.Second),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, username, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt.Format(sqliteTime),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return User{}, ErrUserExists
		}
		return User{}, fmt.Errorf("storage: cannot create user: %w", err)
	}
	return u, nil
}

func (s *Store) userBy(ctx context.Context, column, value string) (User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, username, password_hash, created_at FROM users WHERE "+column+" = ?",
		value,
	).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// UserByEmail looks an account up by email.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	return s.userBy(ctx, "email", normalizeEmail(email))
}

// UserByID looks an account up by id.
func (s *Store) UserByID(ctx context.Context, id string) (User, error) {
	return s.userBy(ctx, "id", id)
}

// HighScore returns the user's best score for the game, 0 if none.
func (s *Store) HighScore(ctx context.Context, gameID, userID string) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx,
		"SELECT score FROM high_scores WHERE user_id = ? AND game_id = ?",
		userID, gameID,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// SubmitScore keeps the higher of the stored and submitted score.
func (s *Store) SubmitScore(ctx context.Context, userID, gameID string, score int, profile string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO high_scores (user_id, game_id, score, profile, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, game_id) DO UPDATE SET
			score = excluded.score,
			profile = excluded.profile,
			updated_at = excluded.updated_at
		 WHERE excluded.score > high_scores.score`,
		userID, gameID, score, profile, s.now().Format(sqliteTime),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// Leaderboard returns the best score per user, highest first. Equal scores
// are ordered by who reached them first.
func (s *Store) Leaderboard(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT h.user_id, COALESCE(u.username, h.user_id), h.game_id, h.score, h.profile, h.updated_at
		 FROM high_scores h
		 LEFT JOIN users u ON u.id = h.user_id
		 WHERE h.game_id = ?
		 ORDER BY h.score DESC, h.updated_at ASC, h.user_id ASC
		 LIMIT ?`,
		gameID, leaderboardLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var updatedAt any
		if err := rows.Scan(&e.UserID, &e.Username, &e.GameID, &e.Score, &e.Profile, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// React toggles a reaction: the same kind twice clears it, the other kind
// replaces it. It returns the reaction now stored.
func (s *Store) React(ctx context.Context, userID, gameID string, kind Reaction) (Reaction, error) {
	if !kind.Valid() {
		return ReactionNone, ErrInvalidReaction
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReactionNone, fmt.Errorf("storage: cannot begin reaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx,
		"SELECT kind FROM reactions WHERE user_id = ? AND game_id = ?", userID, gameID,
	).Scan(&current)

	result := kind
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			"INSERT INTO reactions (user_id, game_id, kind) VALUES (?, ?, ?)", userID, gameID, string(kind))
	case err != nil:
	case Reaction(current) == kind:
		result = ReactionNone
		_, err = tx.ExecContext(ctx,
			"DELETE FROM reactions WHERE user_id = ? AND game_id = ?", userID, gameID)
	default:
		_, err = tx.ExecContext(ctx,
			"UPDATE reactions SET kind = ? WHERE user_id = ? AND game_id = ?", string(kind), userID, gameID)
	}
	if err != nil {
		return ReactionNone, fmt.Errorf("storage: cannot save reaction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return ReactionNone, fmt.Errorf("storage: cannot commit reaction: %w", err)
	}
	return result, nil
}

// Reactions counts likes and dislikes for one game.
func (s *Store) Reactions(ctx context.Context, gameID string) (ReactionCounts, error) {
	var c ReactionCounts
	err := s.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN kind = 'like' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'dislike' THEN 1 ELSE 0 END), 0)
		 FROM reactions WHERE game_id = ?`,
		gameID,
	).Scan(&c.Likes, &c.Dislikes)
	if err != nil {
		return ReactionCounts{}, fmt.Errorf("storage: cannot count reactions: %w", err)
	}
	return c, nil
}

// AllReactions counts reactions for every game that has any.
func (s *Store) AllReactions(ctx context.Context) (map[string]ReactionCounts, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT game_id, kind, COUNT(*) FROM reactions GROUP BY game_id, kind")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count reactions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ReactionCounts)
	for rows.Next() {
		var gameID, kind string
		var n int
		if err := rows.Scan(&gameID, &kind, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan reaction row: %w", err)
		}
		c := out[gameID]
		if Reaction(kind) == ReactionLike {
			c.Likes = n
		} else {
			c.Dislikes = n
		}
		out[gameID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// PostMessage appends a message to a game's board. The author must exist.
func (s *Store) PostMessage(ctx context.Context, gameID, userID, text string) (Message, error) {
	text, err := ValidateMessage(text)
	if err != nil {
		return Message{}, err
	}
	author, err := s.UserByID(ctx, userID)
	if err != nil {
		return Message{}, err
	}
	m := Message{
		ID:        uuid.NewString(),
		GameID:    gameID,
		UserID:    userID,
		Username:  author.Username,
		Text:      text,
		CreatedAt: s.now().Truncate(time.Second),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO messages (id, game_id, user_id, username, text, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		m.ID, m.GameID, m.UserID, m.Username, m.Text, m.CreatedAt.Format(sqliteTime),
	)
	if err != nil {
		return Message{}, fmt.Errorf("storage: cannot save message: %w", err)
	}
	return m, nil
}

// Messages returns the newest messages for a game, newest first.
func (s *Store) Messages(ctx context.Context, gameID string, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, user_id, username, text, created_at
		 FROM messages
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, messagesLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var createdAt any
		if err := rows.Scan(&m.ID, &m.GameID, &m.UserID, &m.Username, &m.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan message: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ToggleFavorite adds or removes a favorite and reports whether the game
// is now a favorite.
func (s *Store) ToggleFavorite(ctx context.Context, userID, gameID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND game_id = ?", userID, gameID)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, game_id) VALUES (?, ?)", userID, gameID); err != nil {
		return false, fmt.Errorf("storage: cannot update favorite: %w", err)
	}
	return true, nil
}

// Favorites lists a user's favorite game ids in name order.
func (s *Store) Favorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT game_id FROM favorites WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query favorites: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan favorite: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	sort.Strings(out)
	return out, nil
}
