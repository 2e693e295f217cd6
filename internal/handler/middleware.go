package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"qa_service/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// AccessGuard admits requests carrying a valid access token and stores the caller identity
// in the request context. The cookie is checked first; the header only when enabled.
func (h *Handler) AccessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "handler.AccessGuard"

		log := h.log.With(slog.String("op", op), slog.String("request_id", c.GetString(requestIDKey)))

		token, ok := h.requestToken(c)
		if !ok {
			tokenVerificationsTotal.WithLabelValues("missing").Inc()
			newErrorResponse(c, http.StatusUnauthorized, "Please provide a token or authenticate.")

			return
		}

		if !auth.WellFormed(token) {
			tokenVerificationsTotal.WithLabelValues("malformed").Inc()
			newErrorResponse(c, http.StatusBadRequest, "Invalid token format.")

			return
		}

		identity, err := h.tokens.Verify(token)
		if err != nil {
			log.Debug("access token verification failed", slog.Any("error", err))

			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			h.handleError(c, log, err)

			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()

		c.Request = c.Request.WithContext(auth.ContextWithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}

func (h *Handler) requestToken(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		return token, true
	}
	if h.opts.AllowHeaderToken {
		return auth.ExtractFromHeader(c.Request)
	}
	return "", false
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func (h *Handler) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			id, err := uuid.NewV4()
			if err != nil {
				h.log.Error("failed to generate request id", slog.Any("error", err))
			} else {
				requestID = id.String()
			}
		}

		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}

func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.GetString(requestIDKey)),
		}

		switch {
		case status >= http.StatusInternalServerError:
			h.log.Error("request completed", attrs...)
		case status >= http.StatusBadRequest:
			h.log.Warn("request completed", attrs...)
		default:
			h.log.Info("request completed", attrs...)
		}
	}
}

func (h *Handler) Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
