package server

import (
	"net/http"
	"strings"
	"time"

	"offer-bidding/internal/biddingerrors"
	"offer-bidding/internal/models"
	"offer-bidding/services/bidding/helpers"
	"offer-bidding/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"route":   c.FullPath(),
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}
	if acc := helpers.CurrentAccount(c); acc.UserID != "" {
		fields["user_id"] = acc.UserID
	}
	utils.Info("HTTP Request", fields)
}

// AccountMiddleware reads the acting account set by the upstream authentication layer
func AccountMiddleware(c *gin.Context) {
	if id := strings.TrimSpace(c.GetHeader(helpers.HeaderUserID)); id != "" {
		helpers.SetAccount(c, models.Account{
			UserID:      id,
			DisplayName: strings.TrimSpace(c.GetHeader(helpers.HeaderUserName)),
		})
	}
	c.Next()
}

// RequireAccount rejects anonymous requests
func RequireAccount(c *gin.Context) {
	if helpers.CurrentAccount(c).UserID == "" {
		utils.JSONAbort(c, http.StatusUnauthorized, biddingerrors.ErrMissingAccount, "acting account required")
		utils.Warn("RequireAccount: anonymous request rejected", map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		return
	}
	c.Next()
}
