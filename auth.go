package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash stands in for an unknown user's password so every login attempt
// pays for one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login exchanges a username and password for the account's bearer token.
// POST /api/login (public)
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.store.UserByUsername(c, body.Username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Error("[login] lookup", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "login unavailable")
		return
	}
	found := err == nil

	hash := dummyHash
	if found {
		hash = []byte(u.Password)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil || !found {
		h.logger.Info("[login] rejected", zap.String("username", body.Username))
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": u.AuthToken, "user_id": u.ID})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authMiddleware resolves the bearer token to a user and stores user_id on the
// context. Unknown tokens are 401; a failing store is 500.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		userID, err := h.store.UserIDByToken(c, token)
		switch {
		case err == nil:
			c.Set("user_id", userID)
			c.Next()
		case errors.Is(err, pgx.ErrNoRows):
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
		default:
			h.logger.Error("[authMiddleware] token lookup", zap.Error(err))
			apiError(c, http.StatusInternalServerError, "authentication unavailable")
			c.Abort()
		}
	}
}
