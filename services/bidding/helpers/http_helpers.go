package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"offer-bidding/internal/biddingerrors"
	"offer-bidding/internal/models"
	"offer-bidding/utils"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"

	accountKey = "account"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// RawAmount turns the raw JSON amount into text for parsing. Numbers and strings are accepted.
func RawAmount(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w - malformed amount string", biddingerrors.ErrInvalidAmount)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w - amount must be a number", biddingerrors.ErrInvalidAmount)
	}
	return n.String(), nil
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrMissingAccount):
		return http.StatusUnauthorized, "acting account required"
	case errors.Is(err, biddingerrors.ErrOfferNotFound):
		return http.StatusNotFound, "offer not found"
	case errors.Is(err, biddingerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for offer"
	case errors.Is(err, biddingerrors.ErrOfferNotAcceptingBids):
		return http.StatusForbidden, "offer is not accepting bids"
	case errors.Is(err, biddingerrors.ErrForbidden):
		return http.StatusForbidden, "operation not allowed"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrConcurrentModification):
		return http.StatusConflict, "offer changed while bidding, please try again"
	case errors.Is(err, biddingerrors.ErrUserNoBids):
		return http.StatusOK, "no offers found for user"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError maps err, writes the error envelope and logs it
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// SetAccount stores the acting account on the request context
func SetAccount(c *gin.Context, acc models.Account) {
	c.Set(accountKey, acc)
}

// CurrentAccount returns the acting account. Anonymous requests get an account with an empty id.
func CurrentAccount(c *gin.Context) models.Account {
	if v, ok := c.Get(accountKey); ok {
		if acc, ok := v.(models.Account); ok {
			return acc
		}
	}
	return models.Account{}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
