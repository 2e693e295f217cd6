package storage

import (
	"context"
	"errors"
	"time"

	"qa_service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	usersCollection          = "users"
	resetPasswordsCollection = "reset_passwords"
	questionsCollection      = "questions"
	answersCollection        = "answers"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserStorage interface {
	CreateUser(ctx context.Context, user models.User) (primitive.ObjectID, error)
	// GetUserByID never returns the password hash.
	GetUserByID(ctx context.Context, userID primitive.ObjectID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (models.Credentials, error)
	DeleteUser(ctx context.Context, userID primitive.ObjectID) error
}

type ResetPasswordStorage interface {
	CreateResetPassword(ctx context.Context, record models.ResetPassword) error
	GetResetPasswordByUserID(ctx context.Context, userID primitive.ObjectID) (models.ResetPassword, error)
	SetResetPasswordToken(ctx context.Context, userID primitive.ObjectID, token string, expire time.Time) error
	ClearResetPasswordToken(ctx context.Context, userID primitive.ObjectID) error
}

type QuestionStorage interface {
	CreateQuestion(ctx context.Context, question models.Question) (models.Question, error)
	GetQuestionByID(ctx context.Context, questionID primitive.ObjectID) (models.Question, error)
	UpdateQuestion(ctx context.Context, questionID primitive.ObjectID, title, content string) (models.Question, error)
	DeleteQuestion(ctx context.Context, questionID primitive.ObjectID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type AnswerStorage interface {
	CreateAnswer(ctx context.Context, answer models.Answer) (models.Answer, error)
	ListAnswersByQuestion(ctx context.Context, questionID primitive.ObjectID) ([]models.Answer, error)
	GetAnswerByID(ctx context.Context, answerID primitive.ObjectID) (models.Answer, error)
	UpdateAnswerContent(ctx context.Context, answerID primitive.ObjectID, content string) (models.Answer, error)
	DeleteAnswer(ctx context.Context, answerID primitive.ObjectID) error
	// AddAnswerLike appends userID to the likes unless already present.
	// It reports false when the like already existed.
	AddAnswerLike(ctx context.Context, answerID, userID primitive.ObjectID) (bool, error)
}

type Storage interface {
	UserStorage
	ResetPasswordStorage
	QuestionStorage
	AnswerStorage

	Close(ctx context.Context) error
}
