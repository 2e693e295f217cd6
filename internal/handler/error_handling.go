package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"qa_service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// handleError renders err as {success:false, message}. Client-facing errors keep their
// status; token verification failures become 401; anything else is logged and hidden.
func (h *Handler) handleError(c *gin.Context, log *slog.Logger, err error) {
	var appErr *models.Error

	switch {
	case errors.As(err, &appErr):
		newErrorResponse(c, appErr.Status, appErr.Message)
	case errors.Is(err, jwt.ErrTokenExpired):
		newErrorResponse(c, http.StatusUnauthorized, "jwt expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		newErrorResponse(c, http.StatusUnauthorized, "invalid signature")
	case errors.Is(err, jwt.ErrTokenMalformed):
		newErrorResponse(c, http.StatusUnauthorized, "jwt malformed")
	case errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		newErrorResponse(c, http.StatusUnauthorized, "invalid token")
	default:
		log.Error("internal error", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
