package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vovakirdan/arcade-portal/internal/engine"
)

// MongoConfig contains connection settings for the MongoDB backend.
type MongoConfig struct {
	URI      string // e.g. mongodb://localhost:27017
	Database string // e.g. arcade
}

// MongoStore implements Repository on MongoDB.
type MongoStore struct {
	client     *mongo.Client
	users      *mongo.Collection
	scores     *mongo.Collection
	reactions  *mongo.Collection
	messages   *mongo.Collection
	favorites  *mongo.Collection
	ctxTimeout time.Duration
	now        func() time.Time
}

var (
	_ Repository          = (*MongoStore)(nil)
	_ engine.ScoreService = (*MongoStore)(nil)
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

type scoreDoc struct {
	UserID    string    `bson:"user_id"`
	GameID    string    `bson:"game_id"`
	Score     int       `bson:"score"`
	Profile   string    `bson:"profile"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type reactionDoc struct {
	UserID string `bson:"user_id"`
	GameID string `bson:"game_id"`
	Kind   string `bson:"kind"`
}

type messageDoc struct {
	ID        string    `bson:"_id"`
	GameID    string    `bson:"game_id"`
	UserID    string    `bson:"user_id"`
	Username  string    `bson:"username"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
}

// OpenMongo connects, pings and ensures indexes.
func OpenMongo(cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "arcade"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("storage: cannot ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	m := &MongoStore{
		client:     client,
		users:      db.Collection("users"),
		scores:     db.Collection("high_scores"),
		reactions:  db.Collection("reactions"),
		messages:   db.Collection("messages"),
		favorites:  db.Collection("favorites"),
		ctxTimeout: 5 * time.Second,
		now:        func() time.Time { return time.Now().UTC() },
	}
	if err := m.ensureIndexes(); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("storage: cannot create indexes: %w", err)
	}
	return m, nil
}

func (m *MongoStore) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.ctxTimeout)
	defer cancel()

	pair := bson.D{{Key: "user_id", Value: 1}, {Key: "game_id", Value: 1}}
	specs := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{m.users, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}},
		{m.scores, mongo.IndexModel{
			Keys:    pair,
			Options: options.Index().SetUnique(true).SetName("user_game_unique"),
		}},
		{m.scores, mongo.IndexModel{
			Keys:    bson.D{{Key: "game_id", Value: 1}, {Key: "score", Value: -1}},
			Options: options.Index().SetName("game_top"),
		}},
		{m.reactions, mongo.IndexModel{
			Keys:    pair,
			Options: options.Index().SetUnique(true).SetName("user_game_unique"),
		}},
		{m.messages, mongo.IndexModel{
			Keys:    bson.D{{Key: "game_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("game_recent"),
		}},
		{m.favorites, mongo.IndexModel{
			Keys:    pair,
			Options: options.Index().SetUnique(true).SetName("user_game_unique"),
		}},
	}
	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateOne(ctx, s.model); err != nil {
			return err
		}
	}
	return nil
}

// withTimeout bounds an operation by the store's timeout and the caller's ctx.
func (m *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.ctxTimeout)
}

// CreateUser registers a new account.
func (m *MongoStore) CreateUser(ctx context.Context, email, username, passwordHash string) (User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	doc := userDoc{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		CreatedAt:    m.now().Truncate(time.Millisecond),
	}
	_, err := m.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return User{}, ErrUserExists
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot create user: %w", err)
	}
	return User(doc), nil
}

func (m *MongoStore) userBy(ctx context.Context, filter bson.M) (User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var doc userDoc
	err := m.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}
	return User(doc), nil
}

// UserByEmail looks an account up by email.
func (m *MongoStore) UserByEmail(ctx context.Context, email string) (User, error) {
	return m.userBy(ctx, bson.M{"email": normalizeEmail(email)})
}

// UserByID looks an account up by id.
func (m *MongoStore) UserByID(ctx context.Context, id string) (User, error) {
	return m.userBy(ctx, bson.M{"_id": id})
}

// HighScore returns the user's best score for the game, 0 if none.
func (m *MongoStore) HighScore(ctx context.Context, gameID, userID string) (int, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var doc scoreDoc
	err := m.scores.FindOne(ctx, bson.M{"user_id": userID, "game_id": gameID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return doc.Score, nil
}

// SubmitScore keeps the higher of the stored and submitted score. The
// filter only matches a lower stored score; when a higher one exists the
// upsert collides with the unique index and the submission is dropped.
func (m *MongoStore) SubmitScore(ctx context.Context, userID, gameID string, score int, profile string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.scores.UpdateOne(ctx,
		bson.M{"user_id": userID, "game_id": gameID, "score": bson.M{"$lt": score}},
		bson.M{"$set": bson.M{"score": score, "profile": profile, "updated_at": m.now()}},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// Leaderboard returns the best score per user, highest first.
func (m *MongoStore) Leaderboard(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}, {Key: "updated_at", Value: 1}, {Key: "user_id", Value: 1}}).
		SetLimit(int64(leaderboardLimit(limit)))
	cur, err := m.scores.Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	var docs []scoreDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("storage: cannot decode leaderboard: %w", err)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.UserID
	}
	names := map[string]string{}
	if len(ids) > 0 {
		cur, err := m.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, fmt.Errorf("storage: cannot query usernames: %w", err)
		}
		var users []userDoc
		if err := cur.All(ctx, &users); err != nil {
			return nil, fmt.Errorf("storage: cannot decode usernames: %w", err)
		}
		for _, u := range users {
			names[u.ID] = u.Username
		}
	}

	entries := make([]ScoreEntry, 0, len(docs))
	for _, d := range docs {
		name, ok := names[d.UserID]
		if !ok {
			name = d.UserID
		}
		entries = append(entries, ScoreEntry{
			UserID:    d.UserID,
			Username:  name,
			GameID:    d.GameID,
			Score:     d.Score,
			Profile:   d.Profile,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return entries, nil
}

// React toggles a reaction and returns the reaction now stored.
func (m *MongoStore) React(ctx context.Context, userID, gameID string, kind Reaction) (Reaction, error) {
	if !kind.Valid() {
		return ReactionNone, ErrInvalidReaction
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	key := bson.M{"user_id": userID, "game_id": gameID}
	var cur reactionDoc
	err := m.reactions.FindOne(ctx, key).Decode(&cur)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		_, err = m.reactions.InsertOne(ctx, reactionDoc{UserID: userID, GameID: gameID, Kind: string(kind)})
	case err != nil:
	case Reaction(cur.Kind) == kind:
		_, err = m.reactions.DeleteOne(ctx, key)
		kind = ReactionNone
	default:
		_, err = m.reactions.UpdateOne(ctx, key, bson.M{"$set": bson.M{"kind": string(kind)}})
	}
	if err != nil {
		return ReactionNone, fmt.Errorf("storage: cannot save reaction: %w", err)
	}
	return kind, nil
}

// countReactions groups reactions matching filter by game and kind.
func (m *MongoStore) countReactions(ctx context.Context, filter bson.M) (map[string]ReactionCounts, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"game": "$game_id", "kind": "$kind"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := m.reactions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count reactions: %w", err)
	}
	var rows []struct {
		ID struct {
			Game string `bson:"game"`
			Kind string `bson:"kind"`
		} `bson:"_id"`
		Count int `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("storage: cannot decode reactions: %w", err)
	}

	out := make(map[string]ReactionCounts)
	for _, r := range rows {
		c := out[r.ID.Game]
		if Reaction(r.ID.Kind) == ReactionLike {
			c.Likes = r.Count
		} else {
			c.Dislikes = r.Count
		}
		out[r.ID.Game] = c
	}
	return out, nil
}

// Reactions counts likes and dislikes for one game.
func (m *MongoStore) Reactions(ctx context.Context, gameID string) (ReactionCounts, error) {
	all, err := m.countReactions(ctx, bson.M{"game_id": gameID})
	if err != nil {
		return ReactionCounts{}, err
	}
	return all[gameID], nil
}

// AllReactions counts reactions for every game that has any.
func (m *MongoStore) AllReactions(ctx context.Context) (map[string]ReactionCounts, error) {
	return m.countReactions(ctx, bson.M{})
}

// PostMessage appends a message to a game's board.
func (m *MongoStore) PostMessage(ctx context.Context, gameID, userID, text string) (Message, error) {
	text, err := ValidateMessage(text)
	if err != nil {
		return Message{}, err
	}
	author, err := m.UserByID(ctx, userID)
	if err != nil {
		return Message{}, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	doc := messageDoc{
		ID:        uuid.NewString(),
		GameID:    gameID,
		UserID:    userID,
		Username:  author.Username,
		Text:      text,
		CreatedAt: m.now().Truncate(time.Millisecond),
	}
	if _, err := m.messages.InsertOne(ctx, doc); err != nil {
		return Message{}, fmt.Errorf("storage: cannot save message: %w", err)
	}
	return Message(doc), nil
}

// Messages returns the newest messages for a game, newest first.
func (m *MongoStore) Messages(ctx context.Context, gameID string, limit int) ([]Message, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(messagesLimit(limit)))
	cur, err := m.messages.Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query messages: %w", err)
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("storage: cannot decode messages: %w", err)
	}
	out := make([]Message, len(docs))
	for i, d := range docs {
		out[i] = Message(d)
	}
	return out, nil
}

// ToggleFavorite adds or removes a favorite.
func (m *MongoStore) ToggleFavorite(ctx context.Context, userID, gameID string) (bool, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	key := bson.M{"user_id": userID, "game_id": gameID}
	res, err := m.favorites.DeleteOne(ctx, key)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update favorite: %w", err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}
	if _, err := m.favorites.InsertOne(ctx, key); err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("storage: cannot update favorite: %w", err)
	}
	return true, nil
}

// Favorites lists a user's favorite game ids in name order.
func (m *MongoStore) Favorites(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	cur, err := m.favorites.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query favorites: %w", err)
	}
	var docs []struct {
		GameID string `bson:"game_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("storage: cannot decode favorites: %w", err)
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.GameID)
	}
	sort.Strings(out)
	return out, nil
}

// Close terminates the connection.
func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
