package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"qa_service/internal/models"
	"qa_service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var linkRegex = regexp.MustCompile(`href="([^"]+)"`)

type failingClearStorage struct {
	*storage.MemoryStorage
}

func (f failingClearStorage) ClearResetPasswordToken(context.Context, primitive.ObjectID) error {
	return errors.New("update failed")
}

func TestForgotPassword_SendsLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	fixed := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	env.svc.now = func() time.Time { return fixed }

	require.NoError(t, env.svc.ForgotPassword(ctx, "alice@x.com"))

	require.Len(t, env.mailer.sent, 1)
	msg := env.mailer.sent[0]
	assert.Equal(t, "alice@x.com", msg.To)
	assert.Equal(t, resetPasswordSubject, msg.Subject)

	userID, err := primitive.ObjectIDFromHex(alice.ID)
	require.NoError(t, err)
	rec, err := env.st.GetResetPasswordByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ResetPasswordToken)
	assert.True(t, fixed.Add(time.Hour).Equal(rec.ResetPasswordTokenExpire))

	m := linkRegex.FindStringSubmatch(msg.HTML)
	require.Len(t, m, 2)
	link, err := url.Parse(m[1])
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/resetPassword", link.Path)
	assert.Equal(t, rec.ResetPasswordToken, link.Query().Get("resetPasswordToken"))
}

func TestForgotPassword_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.svc.ForgotPassword(ctx, "")
	requireAppError(t, err, models.ErrValidation, http.StatusBadRequest, "Please provide an e-mail address.")

	err = env.svc.ForgotPassword(ctx, "nobody@x.com")
	requireAppError(t, err, models.ErrNotFound, http.StatusNotFound, "There is no user with that e-mail")

	assert.Empty(t, env.mailer.sent)
}

func TestForgotPassword_MissingResetRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.st.CreateUser(ctx, models.User{Name: "Bob", Username: "bob", Email: "bob@x.com"})
	require.NoError(t, err)

	err = env.svc.ForgotPassword(ctx, "bob@x.com")
	requireAppError(t, err, models.ErrDependency, http.StatusInternalServerError, "Please try again later.")
}

func TestForgotPassword_MailFailureClearsToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	env.mailer.err = errors.New("smtp down")

	err := env.svc.ForgotPassword(ctx, "alice@x.com")
	requireAppError(t, err, models.ErrDependency, http.StatusInternalServerError, "Email couldn't be sent")

	userID, err := primitive.ObjectIDFromHex(alice.ID)
	require.NoError(t, err)
	rec, err := env.st.GetResetPasswordByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, rec.ResetPasswordToken)
}

func TestForgotPassword_ClearFailureIsNotEscalated(t *testing.T) {
	env := newTestEnvWithStorage(t, failingClearStorage{storage.NewMemoryStorage()})
	ctx := context.Background()
	env.register(t, "alice")
	env.mailer.err = errors.New("smtp down")

	err := env.svc.ForgotPassword(ctx, "alice@x.com")
	requireAppError(t, err, models.ErrDependency, http.StatusInternalServerError, "Email couldn't be sent")
}

func TestResetPasswordLink_KeepsExistingQuery(t *testing.T) {
	env := newTestEnv(t)
	env.svc.resetPasswordURL = "https://forum.example.com/reset?lang=en"

	raw, err := env.svc.resetPasswordLink("tok123")
	require.NoError(t, err)

	link, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/reset", link.Path)
	assert.Equal(t, "en", link.Query().Get("lang"))
	assert.Equal(t, "tok123", link.Query().Get("resetPasswordToken"))
	assert.Equal(t, 1, strings.Count(raw, "?"))

	env.svc.resetPasswordURL = "://bad"
	_, err = env.svc.resetPasswordLink("tok123")
	require.Error(t, err)
}
