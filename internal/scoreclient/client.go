// Package scoreclient talks to a remote portal so that terminal sessions
// can share its leaderboards.
package scoreclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/engine"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

var _ engine.ScoreService = (*Client)(nil)

// ErrUnauthorized is returned when the portal rejects the token.
var ErrUnauthorized = errors.New("scoreclient: unauthorized")

// APIError is a non-success response from the portal.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"errorCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scoreclient: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client is an engine.ScoreService backed by the portal REST API. The
// userID arguments are ignored: the portal takes the user from the token.
type Client struct {
	base  string
	token string
	http  *http.Client
}

// New creates a client for the portal at baseURL.
func New(baseURL, token string) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Login exchanges credentials for a token and returns a client using it.
func Login(ctx context.Context, baseURL, email, password string) (*Client, error) {
	c := New(baseURL, "")
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return c, nil
}

// Token returns the bearer token in use.
func (c *Client) Token() string {
	return c.token
}

// HighScore fetches the caller's best score for a game.
func (c *Client) HighScore(ctx context.Context, gameID, _ string) (int, error) {
	var resp struct {
		Score int `json:"score"`
	}
	if err := c.do(ctx, http.MethodGet, gamePath(gameID, "highscore"), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Score, nil
}

// SubmitScore posts a finished round.
func (c *Client) SubmitScore(ctx context.Context, _, gameID string, score int, profile string) error {
	body := map[string]any{"score": score, "profile": profile}
	return c.do(ctx, http.MethodPost, gamePath(gameID, "scores"), body, nil)
}

// Leaderboard fetches the public top entries of a game.
func (c *Client) Leaderboard(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error) {
	var resp struct {
		Entries []struct {
			UserID    string    `json:"userId"`
			Username  string    `json:"username"`
			Score     int       `json:"score"`
			Profile   string    `json:"profile"`
			UpdatedAt time.Time `json:"updatedAt"`
		} `json:"entries"`
	}
	path := gamePath(gameID, "leaderboard")
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]storage.ScoreEntry, len(resp.Entries))
	for i, e := range resp.Entries {
		out[i] = storage.ScoreEntry{
			UserID:    e.UserID,
			Username:  e.Username,
			GameID:    gameID,
			Score:     e.Score,
			Profile:   e.Profile,
			UpdatedAt: e.UpdatedAt,
		}
	}
	return out, nil
}

func gamePath(gameID, action string) string {
	return "/api/games/" + url.PathEscape(gameID) + "/" + action
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("scoreclient: encode: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("scoreclient: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scoreclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("scoreclient: decode: %w", err)
	}
	return nil
}
