package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"qa_service/internal/auth"
	"qa_service/internal/mail"
	"qa_service/internal/models"
)

const resetPasswordSubject = "Reset Password Token"

// ForgotPassword stores a fresh reset token for the user owning email and mails the link.
// When the mail cannot be delivered the token is cleared again, best effort.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	const op = "service.ForgotPassword"

	log := s.log.With(slog.String("op", op))

	if email == "" {
		return models.NewValidationError("Please provide an e-mail address.")
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return lookupErr(op, err, "There is no user with that e-mail")
	}

	reset, err := auth.GenerateResetToken(s.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.storage.GetResetPasswordByUserID(ctx, user.ID); err != nil {
		log.Error("reset password record missing", slog.String("user_id", user.ID.Hex()), slog.Any("error", err))

		return models.NewDependencyError("Please try again later.")
	}

	if err := s.storage.SetResetPasswordToken(ctx, user.ID, reset.Token, reset.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	link, err := s.resetPasswordLink(reset.Token)
	if err != nil {
		s.clearResetToken(ctx, log, user)
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := mail.ResetPasswordEmail(link)
	if err != nil {
		s.clearResetToken(ctx, log, user)
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.mailer.Send(ctx, mail.Message{
		To:      email,
		Subject: resetPasswordSubject,
		HTML:    body,
	})
	if err != nil {
		log.Error("failed to send reset password email", slog.String("user_id", user.ID.Hex()), slog.Any("error", err))

		s.clearResetToken(ctx, log, user)

		return models.NewDependencyError("Email couldn't be sent")
	}

	return nil
}

func (s *service) clearResetToken(ctx context.Context, log *slog.Logger, user models.User) {
	if err := s.storage.ClearResetPasswordToken(context.WithoutCancel(ctx), user.ID); err != nil {
		log.Error("failed to clear reset password token", slog.String("user_id", user.ID.Hex()), slog.Any("error", err))
	}
}

// resetPasswordLink adds the token to the configured URL, keeping any query it already has.
func (s *service) resetPasswordLink(token string) (string, error) {
	u, err := url.Parse(s.resetPasswordURL)
	if err != nil {
		return "", fmt.Errorf("parse reset password url: %w", err)
	}

	q := u.Query()
	q.Set("resetPasswordToken", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (s *service) GetProfile(ctx context.Context, profileID string) (models.User, error) {
	const op = "service.GetProfile"

	id, err := parseID(profileID, "Please provide a profile id", "Please provide a validated profile id")
	if err != nil {
		return models.User{}, err
	}

	user, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, lookupErr(op, err, "There is no user with that id.")
	}

	return user, nil
}
