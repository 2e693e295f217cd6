package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultProfileImage = "default.jpg"
)

type Credentials struct {
	UserID       primitive.ObjectID
	Name         string
	PasswordHash string // bcrypt hash
}

// User never carries the password hash in JSON; default reads leave it empty.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	About        string             `bson:"about,omitempty" json:"about,omitempty"`
	Place        string             `bson:"place,omitempty" json:"place,omitempty"`
	Website      string             `bson:"website,omitempty" json:"website,omitempty"`
	ProfileImage string             `bson:"profile_image" json:"profile_image"`
	Blocked      bool               `bson:"blocked" json:"blocked"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type ResetPassword struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty"`
	UserID                   primitive.ObjectID `bson:"user_id"`
	ResetPasswordToken       string             `bson:"reset_password_token"`
	ResetPasswordTokenExpire time.Time          `bson:"reset_password_token_expire"`
}

// Active reports whether the record holds a token that has not expired at now.
func (r ResetPassword) Active(now time.Time) bool {
	return r.ResetPasswordToken != "" && now.Before(r.ResetPasswordTokenExpire)
}

type Question struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title   string               `bson:"title" json:"title"`
	Content string               `bson:"content" json:"content"`
	Slug    string               `bson:"slug" json:"slug"`
	UserID  primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Likes   []primitive.ObjectID `bson:"likes" json:"likes"`
	// Answers references users, as the stored schema always did.
	Answers   []primitive.ObjectID `bson:"answers" json:"answers"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

func (q Question) OwnerID() string { return q.UserID.Hex() }

type Answer struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Content    string               `bson:"content" json:"content"`
	UserID     primitive.ObjectID   `bson:"user_id" json:"user_id"`
	QuestionID primitive.ObjectID   `bson:"question_id" json:"question_id"`
	Likes      []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt  time.Time            `bson:"created_at" json:"created_at"`
}

func (a Answer) OwnerID() string { return a.UserID.Hex() }

// LikedBy reports whether userID already appears in the answer likes.
func (a Answer) LikedBy(userID primitive.ObjectID) bool {
	for _, like := range a.Likes {
		if like == userID {
			return true
		}
	}
	return false
}
