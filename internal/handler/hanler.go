package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"qa_service/internal/auth"
	"qa_service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultOrigin = "http://localhost:3000"

// Tokens verifies access tokens and produces the cookies that carry them.
type Tokens interface {
	Verify(token string) (auth.Identity, error)
	Cookie(token string) *http.Cookie
	ExpiredCookie() *http.Cookie
}

type Options struct {
	// AllowHeaderToken lets the access guard fall back to "Authorization: Bearer: <token>".
	AllowHeaderToken bool
	AllowedOrigins   []string
}

type Handler struct {
	serviceLayer service.Service
	tokens       Tokens
	opts         Options
	log          *slog.Logger
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

func NewHandler(srvc service.Service, tokens Tokens, opts Options, lgr *slog.Logger) *Handler {
	return &Handler{
		serviceLayer: srvc,
		tokens:       tokens,
		opts:         opts,
		log:          lgr,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(h.RequestID(), h.RequestLogger(), h.Metrics())
	router.Use(cors.New(h.corsConfig()))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guard := h.AccessGuard()

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", guard, h.GetMe)
		authGroup.GET("/logout", guard, h.Logout)
	}

	account := api.Group("/account")
	{
		account.PUT("/forgotpassword", h.ForgotPassword)
		account.PUT("/resetpassword", h.notImplemented)
		account.PUT("/updateaccount", h.notImplemented)
	}

	profile := api.Group("/profile")
	{
		profile.GET("/:profileId", h.GetProfile)
	}

	admin := api.Group("/admin")
	{
		admin.GET("/admin", h.AdminPanel)
	}

	question := api.Group("/question")
	{
		question.POST("/", guard, h.AskQuestion)
		question.GET("/:questionId", h.GetQuestion)
		question.PUT("/edit/:questionId", guard, h.EditQuestion)
		question.DELETE("/delete/:questionId", guard, h.DeleteQuestion)
		question.PUT("/like/:questionId", guard, h.notImplemented)
		question.PUT("/undolike/:questionId", guard, h.notImplemented)

		answers := question.Group("/:questionId/answers")
		{
			answers.POST("/", guard, h.AddAnswer)
			answers.GET("/", h.ListAnswers)
			answers.GET("/:answerId", h.GetAnswer)
			answers.PUT("/:answerId", guard, h.EditAnswer)
			answers.DELETE("/:answerId", guard, h.DeleteAnswer)
			answers.PUT("/:answerId/like", guard, h.LikeAnswer)
		}
	}

	return router
}

func (h *Handler) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(h.opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = h.opts.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{defaultOrigin}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour

	return corsConfig
}

// bindBody decodes an optional JSON body; an empty body leaves dst untouched so that
// field validation reports what is missing.
func bindBody(c *gin.Context, log *slog.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		log.Debug("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "Invalid request body.")

		return false
	}
	return true
}

func currentIdentity(c *gin.Context) auth.Identity {
	identity, _ := auth.IdentityFromContext(c.Request.Context())
	return identity
}

// GET /api/admin/admin
func (h *Handler) AdminPanel(c *gin.Context) {
	c.String(http.StatusOK, "Admin")
}

func (h *Handler) notImplemented(c *gin.Context) {
	newErrorResponse(c, http.StatusNotImplemented, "This feature is still under development.")
}
