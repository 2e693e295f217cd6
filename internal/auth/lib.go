package auth

import (
	"crypto/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const ResetTokenTTL = time.Hour

const resetTokenLength = 32

func RandomString(n int) (string, error) {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// largest multiple of len(letters) below 256, to keep the distribution uniform
	const limit = 256 - 256%len(letters)

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, letters[int(b)%len(letters)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares in constant time.
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

type ResetToken struct {
	Token     string
	ExpiresAt time.Time
}

// GenerateResetToken returns a fresh password-reset token valid for one hour from now.
func GenerateResetToken(now time.Time) (ResetToken, error) {
	token, err := RandomString(resetTokenLength)
	if err != nil {
		return ResetToken{}, err
	}

	return ResetToken{
		Token:     token,
		ExpiresAt: now.Add(ResetTokenTTL),
	}, nil
}
