package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"unicode/utf8"

	"qa_service/internal/auth"
	"qa_service/internal/models"
	"qa_service/internal/storage"
)

const (
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input
	maxPasswordBytes  = 72
)

var emailRegex = regexp.MustCompile(`^([\w\-\.]+@([\w-]+\.)+[\w-]{2,4})?$`)

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	Token    string
	Identity auth.Identity
}

func (in RegisterInput) validate() error {
	switch {
	case in.Name == "":
		return models.NewValidationError("Please provide a name.")
	case in.Username == "":
		return models.NewValidationError("Please provide a username value")
	case in.Email == "":
		return models.NewValidationError("Please provide an e-mail address.")
	case !emailRegex.MatchString(in.Email):
		return models.NewValidationError("Please provide a valid e-mail")
	case in.Password == "":
		return models.NewValidationError("Please provide a password")
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		return models.NewValidationError("Please provide a password longer than 6 characters")
	case len(in.Password) > maxPasswordBytes:
		return models.NewValidationError("Please provide a password no longer than 72 bytes")
	}
	return nil
}

// Register creates the user together with its empty reset-password record.
// If the record cannot be created the user is removed again.
func (s *service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	const op = "service.Register"

	if err := in.validate(); err != nil {
		return models.User{}, err
	}

	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	user := models.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		Role:         models.RoleUser,
		Password:     passwordHash,
		ProfileImage: models.DefaultProfileImage,
		CreatedAt:    now,
	}

	id, err := s.storage.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.User{}, models.NewValidationError("Username or e-mail is already in use.")
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	record := models.ResetPassword{
		UserID:                   id,
		ResetPasswordToken:       "",
		ResetPasswordTokenExpire: now,
	}
	if err := s.storage.CreateResetPassword(ctx, record); err != nil {
		if delErr := s.storage.DeleteUser(context.WithoutCancel(ctx), id); delErr != nil {
			s.log.Error("failed to roll back user after reset record failure",
				slog.String("op", op), slog.String("user_id", id.Hex()), slog.Any("error", delErr))
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user.ID = id
	user.Password = ""

	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	const op = "service.Login"

	if email == "" {
		return LoginResult{}, models.NewValidationError("Please provide an e-mail address to login")
	}
	if password == "" {
		return LoginResult{}, models.NewValidationError("Please provide a password to login")
	}

	cred, err := s.storage.GetCredentialsByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, lookupErr(op, err, "There is no user with that e-mail address.")
	}

	if ok := auth.CheckPasswordHash(cred.PasswordHash, password); !ok {
		return LoginResult{}, models.NewAuthError(http.StatusBadRequest, "Password is incorrect.")
	}

	identity := auth.Identity{ID: cred.UserID.Hex(), Name: cred.Name}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	return LoginResult{Token: token, Identity: identity}, nil
}

func (s *service) GetMe(ctx context.Context, identity auth.Identity) (models.User, error) {
	const op = "service.GetMe"

	id, err := identityID(identity)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, lookupErr(op, err, "There is no user with that id.")
	}

	return user, nil
}
