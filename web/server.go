// Package web is the small HTTP surface of the storefront: the landing spot
// for the Google OAuth redirect plus a health endpoint. Everything else
// happens over Telegram.
package web

import (
	"context"
	"net/http"
	"strconv"

	"rentacar/config"
	"rentacar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GoogleLoginCompleter finishes a Google sign-in for a chat once the browser
// redirect delivered the backend session id.
type GoogleLoginCompleter interface {
	CompleteGoogleLogin(ctx context.Context, chatID int64, sessionID string) error
}

// NewRouter builds the Gin router.
func NewRouter(completer GoogleLoginCompleter, logger *zap.Logger) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The OAuth page redirects here with the backend session id and the chat
	// id it was handed as the state parameter.
	router.GET("/auth/google/callback", func(c *gin.Context) {
		sessionID := c.Query("session_id")
		state := c.Query("state")
		if sessionID == "" || state == "" {
			utils.JSONError(c, http.StatusBadRequest, "Invalid callback", "session_id and state are required")
			return
		}
		chatID, err := strconv.ParseInt(state, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid callback", "state must be a chat id")
			return
		}

		if err := completer.CompleteGoogleLogin(c.Request.Context(), chatID, sessionID); err != nil {
			logger.Warn("google login completion failed",
				zap.Int64("chat", chatID), zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "Login failed", "Could not complete the sign-in, return to Telegram and retry")
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, "<html><body><h3>Giriş tamamlandı ✅</h3><p>Telegram'a dönebilirsiniz.</p></body></html>")
	})

	return router
}
