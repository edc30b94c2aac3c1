package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/arcade-portal/internal/auth"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type scoreRequest struct {
	Score   *int   `json:"score" binding:"required"`
	Profile string `json:"profile"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type gameView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

type scoreView struct {
	Rank      int       `json:"rank"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Profile   string    `json:"profile,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type messageView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u storage.User) userView {
	return userView{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "email, password and username are required")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		fail(c, http.StatusBadRequest, CodeValidation, "username must not be blank")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrWeakPassword) {
		fail(c, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("hash password", "error", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "internal error")
		return
	}

	user, err := s.repo.CreateUser(c.Request.Context(), req.Email, username, hash)
	if err != nil {
		s.failStorage(c, err)
		return
	}
	s.metrics.registrations.Inc()
	s.respondWithToken(c, http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "email and password are required")
		return
	}

	user, err := s.repo.UserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		fail(c, http.StatusUnauthorized, CodeUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		s.failStorage(c, err)
		return
	}
	s.respondWithToken(c, http.StatusOK, user)
}

func (s *Server) respondWithToken(c *gin.Context, status int, user storage.User) {
	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error("issue token", "error", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "internal error")
		return
	}
	c.JSON(status, authResponse{Token: token, User: toUserView(user)})
}

func (s *Server) listGames(c *gin.Context) {
	counts, err := s.repo.AllReactions(c.Request.Context())
	if err != nil {
		s.failStorage(c, err)
		return
	}
	infos := s.games()
	games := make([]gameView, 0, len(infos))
	for _, g := range infos {
		rc := counts[g.ID]
		games = append(games, gameView{ID: g.ID, Title: g.Title, Likes: rc.Likes, Dislikes: rc.Dislikes})
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (s *Server) react(kind storage.Reaction) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		gameID := c.Param("gameId")
		current, err := s.repo.React(ctx, c.GetString(ctxUserID), gameID, kind)
		if err != nil {
			s.failStorage(c, err)
			return
		}
		counts, err := s.repo.Reactions(ctx, gameID)
		if err != nil {
			s.failStorage(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reaction": string(current),
			"likes":    counts.Likes,
			"dislikes": counts.Dislikes,
		})
	}
}

func (s *Server) leaderboard(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	entries, err := s.repo.Leaderboard(c.Request.Context(), c.Param("gameId"), limit)
	if err != nil {
		s.failStorage(c, err)
		return
	}
	rows := make([]scoreView, len(entries))
	for i, e := range entries {
		rows[i] = scoreView{
			Rank:      i + 1,
			UserID:    e.UserID,
			Username:  e.Username,
			Score:     e.Score,
			Profile:   e.Profile,
			UpdatedAt: e.UpdatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"gameId": c.Param("gameId"), "entries": rows})
}

func (s *Server) highScore(c *gin.Context) {
	score, err := s.repo.HighScore(c.Request.Context(), c.Param("gameId"), c.GetString(ctxUserID))
	if err != nil {
		s.failStorage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}

func (s *Server) submitScore(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "score is required")
		return
	}
	if *req.Score < 0 {
		fail(c, http.StatusBadRequest, CodeValidation, "score must not be negative")
		return
	}

	ctx := c.Request.Context()
	gameID := c.Param("gameId")
	userID := c.GetString(ctxUserID)
	prev, err := s.repo.HighScore(ctx, gameID, userID)
	if err != nil {
		s.failStorage(c, err)
		return
	}
	if err := s.repo.SubmitScore(ctx, userID, gameID, *req.Score, req.Profile); err != nil {
		s.failStorage(c, err)
		return
	}
	s.metrics.scores.WithLabelValues(gameID).Inc()

	high, err := s.repo.HighScore(ctx, gameID, userID)
	if err != nil {
		s.failStorage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": high, "newHigh": *req.Score > prev})
}

func (s *Server) messages(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	msgs, err := s.repo.Messages(c.Request.Context(), c.Param("gameId"), limit)
	if err != nil {
		s.failStorage(c, err)
		return
	}
	views := make([]messageView, len(msgs))
	for i, m := range msgs {
		views[i] = toMessageView(m)
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}

func (s *Server) postMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeValidation, "invalid request body")
		return
	}
	gameID := c.Param("gameId")
	msg, err := s.repo.PostMessage(c.Request.Context(), gameID, c.GetString(ctxUserID), req.Text)
	if err != nil {
		s.failStorage(c, err)
		return
	}
	s.metrics.messages.WithLabelValues(gameID).Inc()
	c.JSON(http.StatusCreated, toMessageView(msg))
}

func toMessageView(m storage.Message) messageView {
	return messageView{ID: m.ID, UserID: m.UserID, Username: m.Username, Text: m.Text, CreatedAt: m.CreatedAt}
}

func (s *Server) toggleFavorite(c *gin.Context) {
	on, err := s.repo.ToggleFavorite(c.Request.Context(), c.GetString(ctxUserID), c.Param("gameId"))
	if err != nil {
		s.failStorage(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gameId": c.Param("gameId"), "favorite": on})
}

func (s *Server) favorites(c *gin.Context) {
	favs, err := s.repo.Favorites(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		s.failStorage(c, err)
		return
	}
	if favs == nil {
		favs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

// queryLimit parses the optional "limit" query parameter. Zero means the
// repository default.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		fail(c, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
		return 0, false
	}
	return n, true
}
