package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type questionRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// POST /api/question/
func (h *Handler) AskQuestion(c *gin.Context) {
	const op = "handler.AskQuestion"

	log := h.log.With(slog.String("op", op))

	var req questionRequest
	if !bindBody(c, log, &req) {
		return
	}

	question, err := h.serviceLayer.AskQuestion(c.Request.Context(), currentIdentity(c), req.Title, req.Content)
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	log.Info("question created", slog.String("question_id", question.ID.Hex()), slog.String("slug", question.Slug))

	c.JSON(http.StatusOK, gin.H{"success": true, "data": question})
}

// GET /api/question/:questionId
func (h *Handler) GetQuestion(c *gin.Context) {
	const op = "handler.GetQuestion"

	log := h.log.With(slog.String("op", op))

	question, err := h.serviceLayer.GetQuestion(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": question})
}

// PUT /api/question/edit/:questionId
func (h *Handler) EditQuestion(c *gin.Context) {
	const op = "handler.EditQuestion"

	log := h.log.With(slog.String("op", op))

	var req questionRequest
	if !bindBody(c, log, &req) {
		return
	}

	question, err := h.serviceLayer.EditQuestion(c.Request.Context(), currentIdentity(c), c.Param("questionId"), req.Title, req.Content)
	if err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Your question has been updated.",
		"question": question,
	})
}

// DELETE /api/question/delete/:questionId
func (h *Handler) DeleteQuestion(c *gin.Context) {
	const op = "handler.DeleteQuestion"

	log := h.log.With(slog.String("op", op))

	if err := h.serviceLayer.DeleteQuestion(c.Request.Context(), currentIdentity(c), c.Param("questionId")); err != nil {
		h.handleError(c, log, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your question has been deleted.",
	})
}
