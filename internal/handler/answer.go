package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type answerRequest struct {
	Content string `json:"content"`
}

// POST /api/question/:questionId/answers/
func (h *Handler) AddAnswer(c *gin.Context) {
	const op = "handler.AddAnswer"

	log := h.log.With(slog.String("op", op))

	var req answerRequest
	if !bindBody(c, log, &req) {
		return
	}

	answer, err := h.serviceLayer.AddAnswer(c.Request.Context(), currentIdentity(c), c.Param("questionId"), req.Content)
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your answer has been generated",
		"answer":  answer,
	})
}

// GET /api/question/:questionId/answers/
func (h *Handler) ListAnswers(c *gin.Context) {
	const op = "handler.ListAnswers"

	log := h.log.With(slog.String("op", op))

	answers, err := h.serviceLayer.ListAnswers(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"answers_count": len(answers),
		"answers":       answers,
	})
}

// GET /api/question/:questionId/answers/:answerId
func (h *Handler) GetAnswer(c *gin.Context) {
	const op = "handler.GetAnswer"

	log := h.log.With(slog.String("op", op))

	answer, err := h.serviceLayer.GetAnswer(c.Request.Context(), c.Param("questionId"), c.Param("answerId"))
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "answer": answer})
}

// PUT /api/question/:questionId/answers/:answerId
func (h *Handler) EditAnswer(c *gin.Context) {
	const op = "handler.EditAnswer"

	log := h.log.With(slog.String("op", op))

	var req answerRequest
	if !bindBody(c, log, &req) {
		return
	}

	answer, err := h.serviceLayer.EditAnswer(c.Request.Context(), currentIdentity(c), c.Param("questionId"), c.Param("answerId"), req.Content)
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "answer": answer})
}

// DELETE /api/question/:questionId/answers/:answerId
func (h *Handler) DeleteAnswer(c *gin.Context) {
	const op = "handler.DeleteAnswer"

	log := h.log.With(slog.String("op", op))

	if err := h.serviceLayer.DeleteAnswer(c.Request.Context(), currentIdentity(c), c.Param("questionId"), c.Param("answerId")); err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your answer has been deleted.",
	})
}

// PUT /api/question/:questionId/answers/:answerId/like
func (h *Handler) LikeAnswer(c *gin.Context) {
	const op = "handler.LikeAnswer"

	log := h.log.With(slog.String("op", op))

	if err := h.serviceLayer.LikeAnswer(c.Request.Context(), currentIdentity(c), c.Param("questionId"), c.Param("answerId")); err != nil {
		h.handleError(c, log, err)

		return
	}

	answerLikesTotal.Inc()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You liked this answer",
	})
}
