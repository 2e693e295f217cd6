package mail

import (
	"context"
	"testing"

	"qa_service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetPasswordEmail(t *testing.T) {
	body, err := ResetPasswordEmail("http://localhost:3000/api/auth/resetPassword?resetPasswordToken=abc123")
	require.NoError(t, err)

	assert.Contains(t, body, "Reset Your Password")
	assert.Contains(t, body, `href="http://localhost:3000/api/auth/resetPassword?resetPasswordToken=abc123"`)
	assert.Contains(t, body, "expire in 1 hour")
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	s := NewSMTPSender(config.SMTP{Host: "localhost", Port: 2525, From: "noreply@x.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, Message{To: "alice@x.com", Subject: "s", HTML: "<p>x</p>"})
	require.ErrorIs(t, err, context.Canceled)
}
