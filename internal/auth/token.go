package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"qa_service/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "access_token"

	bearerPrefix      = "Bearer:"
	// the token follows the prefix after a single space
	bearerTokenPrefix = bearerPrefix + " "
)

var ErrEmptySecret = errors.New("jwt secret key is empty")

type Claims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret    []byte
	ttl       time.Duration
	cookieTTL time.Duration
	secure    bool
	now       func() time.Time
}

// NewTokenService builds the signer/verifier. secure sets the Secure attribute on issued cookies.
func NewTokenService(cfg config.JWT, secure bool) (*TokenService, error) {
	const op = "auth.NewTokenService"

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySecret)
	}

	return &TokenService{
		secret:    []byte(cfg.SecretKey),
		ttl:       cfg.TTL,
		cookieTTL: cfg.CookieTTL,
		secure:    secure,
		now:       time.Now,
	}, nil
}

func (s *TokenService) Issue(identity Identity) (string, error) {
	now := s.now()
	claims := &Claims{
		ID:   identity.ID,
		Name: identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	const op = "auth.Verify"

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("%s: %w", op, jwt.ErrTokenSignatureInvalid)
	}

	return Identity{ID: claims.ID, Name: claims.Name}, nil
}

// Cookie wraps a signed token into the access cookie. Its lifetime is configured
// separately from the token TTL.
func (s *TokenService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(s.cookieTTL),
		HttpOnly: true,
		Secure:   s.secure,
	}
}

// ExpiredCookie clears the access cookie on the client.
func (s *TokenService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
	}
}

// HasBearerPrefix reports whether the Authorization header starts with the literal "Bearer:".
func HasBearerPrefix(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Authorization"), bearerPrefix)
}

// ExtractFromHeader reads the token from an "Authorization: Bearer: <token>" header.
func ExtractFromHeader(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerTokenPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerTokenPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}

// WellFormed reports whether token has the compact JWS shape header.payload.signature.
func WellFormed(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
