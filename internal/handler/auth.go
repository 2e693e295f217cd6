package handler

import (
	"log/slog"
	"net/http"

	"qa_service/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type loginResponse struct {
	Success     bool             `json:"success"`
	AccessToken string           `json:"access_token"`
	Data        identityResponse `json:"data"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	const op = "handler.Register"

	log := h.log.With(slog.String("op", op))

	var req registerRequest
	if !bindBody(c, log, &req) {
		return
	}

	user, err := h.serviceLayer.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	registrationsTotal.Inc()
	log.Info("user registered", slog.String("user_id", user.ID.Hex()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You have been registered. Now login.",
	})
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	const op = "handler.Login"

	log := h.log.With(slog.String("op", op))

	var req loginRequest
	if !bindBody(c, log, &req) {
		return
	}

	res, err := h.serviceLayer.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		h.handleError(c, log, err)

		return
	}

	loginsTotal.WithLabelValues("success").Inc()

	http.SetCookie(c.Writer, h.tokens.Cookie(res.Token))
	c.JSON(http.StatusOK, loginResponse{
		Success:     true,
		AccessToken: res.Token,
		Data: identityResponse{
			ID:   res.Identity.ID,
			Name: res.Identity.Name,
		},
	})
}

// GET /api/auth/me
func (h *Handler) GetMe(c *gin.Context) {
	const op = "handler.GetMe"

	log := h.log.With(slog.String("op", op))

	user, err := h.serviceLayer.GetMe(c.Request.Context(), currentIdentity(c))
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// GET /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	const op = "handler.Logout"

	log := h.log.With(slog.String("op", op))

	log.Info("user logout", slog.String("user_id", currentIdentity(c).ID))

	http.SetCookie(c.Writer, h.tokens.ExpiredCookie())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You have been logged out.",
	})
}
