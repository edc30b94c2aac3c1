package scoreclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/arcade-portal/internal/api"
	"github.com/vovakirdan/arcade-portal/internal/auth"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.Cost = bcrypt.MinCost
}

// startPortal runs a real portal on a temporary database and registers one
// account.
func startPortal(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	_, err = store.CreateUser(context.Background(), "ann@example.com", "ann", hash)
	require.NoError(t, err)

	issuer, err := auth.NewIssuer("k", time.Hour, "test")
	require.NoError(t, err)
	srv := api.New(config.ServerConfig{}, store, issuer,
		api.WithLogger(log.New(io.Discard)),
		api.WithGames(func() []registry.GameInfo { return []registry.GameInfo{{ID: "snake", Title: "Snake"}} }),
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClientRoundTrip(t *testing.T) {
	ts := startPortal(t)
	ctx := context.Background()

	c, err := Login(ctx, ts.URL+"/", "ann@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Token())

	high, err := c.HighScore(ctx, "snake", "")
	require.NoError(t, err)
	assert.Zero(t, high)

	require.NoError(t, c.SubmitScore(ctx, "", "snake", 70, "normal"))
	require.NoError(t, c.SubmitScore(ctx, "", "snake", 20, "normal"))

	high, err = c.HighScore(ctx, "snake", "")
	require.NoError(t, err)
	assert.Equal(t, 70, high)

	board, err := c.Leaderboard(ctx, "snake", 5)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "ann", board[0].Username)
	assert.Equal(t, 70, board[0].Score)
	assert.Equal(t, "snake", board[0].GameID)
}

func TestClientErrors(t *testing.T) {
	ts := startPortal(t)
	ctx := context.Background()

	_, err := Login(ctx, ts.URL, "ann@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = New(ts.URL, "garbage").HighScore(ctx, "snake", "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	c, err := Login(ctx, ts.URL, "ann@example.com", "secret123")
	require.NoError(t, err)
	err = c.SubmitScore(ctx, "", "chess", 10, "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, api.CodeUnknownGame, apiErr.Code)
}

func TestClientUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, "t").HighScore(context.Background(), "snake", "")
	assert.Error(t, err)
}
