package service

import (
	"context"
	"net/http"
	"testing"

	"qa_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	testTitle   = "How do channels work?"
	testContent = "I want to understand buffered channels."
)

func TestAskQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	q, err := env.svc.AskQuestion(ctx, alice, testTitle, testContent)
	require.NoError(t, err)
	assert.Equal(t, "how-do-channels-work", q.Slug)
	assert.Equal(t, alice.ID, q.UserID.Hex())
	assert.False(t, q.ID.IsZero())

	second, err := env.svc.AskQuestion(ctx, alice, testTitle, testContent)
	require.NoError(t, err)
	assert.Equal(t, "how-do-channels-work-1", second.Slug)

	third, err := env.svc.AskQuestion(ctx, alice, testTitle, testContent)
	require.NoError(t, err)
	assert.Equal(t, "how-do-channels-work-2", third.Slug)
}

func TestAskQuestion_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	_, err := env.svc.AskQuestion(ctx, alice, "", testContent)
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide a title and content")

	_, err = env.svc.AskQuestion(ctx, alice, "short", testContent)
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide a title that is at least 10 characters long.")

	_, err = env.svc.AskQuestion(ctx, alice, testTitle, "too short")
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide a content that is at least 20 characters long.")
}

func TestGetQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	q, err := env.svc.AskQuestion(ctx, alice, testTitle, testContent)
	require.NoError(t, err)

	got, err := env.svc.GetQuestion(ctx, q.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, q.Title, got.Title)

	_, err = env.svc.GetQuestion(ctx, "")
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide a question id")

	_, err = env.svc.GetQuestion(ctx, "123")
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide a valid id")

	_, err = env.svc.GetQuestion(ctx, primitive.NewObjectID().Hex())
	requireAppError(t, err, models.ErrNotFound, http.StatusNotFound, "There is no question with that id")
}

func TestEditQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	q, err := env.svc.AskQuestion(ctx, alice, testTitle, testContent)
	require.NoError(t, err)

	_, err = env.svc.EditQuestion(ctx, bob, q.ID.Hex(), "Hijacked question title", "Hijacked question content here")
	requireAppError(t, err, models.ErrForbidden, http.StatusForbidden, "You cannot edit this question.")

	unchanged, err := env.svc.GetQuestion(ctx, q.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, testTitle, unchanged.Title)
	assert.Equal(t, testContent, unchanged.Content)

	edited, err := env.svc.EditQuestion(ctx, alice, q.ID.Hex(), "How do select statements work?", "Looking for the semantics of select.")
	require.NoError(t, err)
	assert.Equal(t, "How do select statements work?", edited.Title)
	assert.Equal(t, "Looking for the semantics of select.", edited.Content)
	assert.Equal(t, q.Slug, edited.Slug)

	_, err = env.svc.EditQuestion(ctx, alice, q.ID.Hex(), "How do select statements work?", "")
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide content to edit the question.")

	_, err = env.svc.EditQuestion(ctx, alice, "bad", testTitle, testContent)
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide a validated question id")

	_, err = env.svc.EditQuestion(ctx, alice, primitive.NewObjectID().Hex(), testTitle, testContent)
	requireAppError(t, err, models.ErrNotFound, http.StatusNotFound, "There is no question with that id.")
}

func TestDeleteQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	q, err := env.svc.AskQuestion(ctx, alice, testTitle, testContent)
	require.NoError(t, err)

	err = env.svc.DeleteQuestion(ctx, bob, q.ID.Hex())
	requireAppError(t, err, models.ErrForbidden, http.StatusForbidden, "You cannot delete this question.")

	_, err = env.svc.GetQuestion(ctx, q.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteQuestion(ctx, alice, q.ID.Hex()))

	_, err = env.svc.GetQuestion(ctx, q.ID.Hex())
	requireAppError(t, err, models.ErrNotFound, http.StatusNotFound, "")

	err = env.svc.DeleteQuestion(ctx, alice, q.ID.Hex())
	requireAppError(t, err, models.ErrNotFound, http.StatusNotFound, "There is no question with that id.")
}
