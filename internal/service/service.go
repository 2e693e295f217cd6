package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"qa_service/internal/auth"
	"qa_service/internal/mail"
	"qa_service/internal/models"
	"qa_service/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Auth interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	GetMe(ctx context.Context, identity auth.Identity) (models.User, error)
}

type Account interface {
	ForgotPassword(ctx context.Context, email string) error
}

type Profile interface {
	GetProfile(ctx context.Context, profileID string) (models.User, error)
}

type Questions interface {
	AskQuestion(ctx context.Context, identity auth.Identity, title, content string) (models.Question, error)
	GetQuestion(ctx context.Context, questionID string) (models.Question, error)
	EditQuestion(ctx context.Context, identity auth.Identity, questionID, title, content string) (models.Question, error)
	DeleteQuestion(ctx context.Context, identity auth.Identity, questionID string) error
}

type Answers interface {
	AddAnswer(ctx context.Context, identity auth.Identity, questionID, content string) (models.Answer, error)
	ListAnswers(ctx context.Context, questionID string) ([]models.Answer, error)
	GetAnswer(ctx context.Context, questionID, answerID string) (models.Answer, error)
	EditAnswer(ctx context.Context, identity auth.Identity, questionID, answerID, content string) (models.Answer, error)
	DeleteAnswer(ctx context.Context, identity auth.Identity, questionID, answerID string) error
	LikeAnswer(ctx context.Context, identity auth.Identity, questionID, answerID string) error
}

type Service interface {
	Auth
	Account
	Profile
	Questions
	Answers
}

type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

type service struct {
	storage          storage.Storage
	tokens           TokenIssuer
	mailer           mail.Sender
	resetPasswordURL string
	log              *slog.Logger
	now              func() time.Time
}

func NewService(st storage.Storage, tokens TokenIssuer, mailer mail.Sender, resetPasswordURL string, lgr *slog.Logger) *service {
	return &service{
		storage:          st,
		tokens:           tokens,
		mailer:           mailer,
		resetPasswordURL: resetPasswordURL,
		log:              lgr,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// parseID validates a path identifier before any store access.
func parseID(raw, missingMsg, invalidMsg string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NilObjectID, models.NewValidationError(missingMsg)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError(invalidMsg)
	}
	return id, nil
}

func identityID(identity auth.Identity) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return primitive.NilObjectID, models.NewAuthError(http.StatusBadRequest, "You are not authenticated. Please login")
	}
	return id, nil
}

// lookupErr turns a storage miss into a not-found error with msg and wraps everything else.
func lookupErr(op string, err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewNotFoundError(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
