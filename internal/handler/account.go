package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"qa_service/internal/models"

	"github.com/gin-gonic/gin"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// PUT /api/account/forgotpassword
func (h *Handler) ForgotPassword(c *gin.Context) {
	const op = "handler.ForgotPassword"

	log := h.log.With(slog.String("op", op))

	var req forgotPasswordRequest
	if !bindBody(c, log, &req) {
		return
	}

	if err := h.serviceLayer.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, models.ErrDependency) {
			resetEmailsTotal.WithLabelValues("failure").Inc()
		}
		h.handleError(c, log, err)

		return
	}

	resetEmailsTotal.WithLabelValues("sent").Inc()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email Sent To Your Email",
	})
}

// GET /api/profile/:profileId
func (h *Handler) GetProfile(c *gin.Context) {
	const op = "handler.GetProfile"

	log := h.log.With(slog.String("op", op))

	user, err := h.serviceLayer.GetProfile(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}
