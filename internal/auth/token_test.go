package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qa_service/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()

	ts, err := NewTokenService(config.JWT{SecretKey: secret, TTL: time.Hour, CookieTTL: 2 * time.Hour}, true)
	require.NoError(t, err)

	return ts
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService(config.JWT{TTL: time.Hour}, false)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(t, "super-secret")
	identities := []Identity{
		{ID: "6650f1c2a1b2c3d4e5f60718", Name: "alice"},
		{ID: "6650f1c2a1b2c3d4e5f60719", Name: ""},
		{ID: "x", Name: "Ünïcødé name"},
	}

	for _, want := range identities {
		tok, err := ts.Issue(want)
		require.NoError(t, err)
		assert.True(t, WellFormed(tok))

		got, err := ts.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(t, "secret")
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := ts.Issue(Identity{ID: "u1", Name: "bob"})
	require.NoError(t, err)

	ts.now = time.Now
	_, err = ts.Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestTokenService(t, "right-secret").Issue(Identity{ID: "u2"})
	require.NoError(t, err)

	_, err = newTestTokenService(t, "wrong-secret").Verify(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := newTestTokenService(t, "k").Verify("not.a.jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{ID: "u3"})
	tok, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = newTestTokenService(t, "k").Verify(tok)
	require.Error(t, err)
}

func TestCookie(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(t, "k")
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ts.now = func() time.Time { return fixed }

	c := ts.Cookie("tok")
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, fixed.Add(2*time.Hour), c.Expires)

	expired := ts.ExpiredCookie()
	assert.Equal(t, CookieName, expired.Name)
	assert.Empty(t, expired.Value)
	assert.Less(t, expired.MaxAge, 0)
}

func TestExtractFromHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		header    string
		wantTok   string
		wantOK    bool
		hasPrefix bool
	}{
		{name: "colon prefix", header: "Bearer: abc.def.ghi", wantTok: "abc.def.ghi", wantOK: true, hasPrefix: true},
		{name: "no space after colon", header: "Bearer:abc.def.ghi", hasPrefix: true},
		{name: "conventional prefix", header: "Bearer abc.def.ghi", hasPrefix: false},
		{name: "empty token", header: "Bearer:   ", hasPrefix: true},
		{name: "no header", header: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			assert.Equal(t, tc.hasPrefix, HasBearerPrefix(r))

			tok, ok := ExtractFromHeader(r)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantTok, tok)
		})
	}
}

func TestWellFormed(t *testing.T) {
	assert.True(t, WellFormed("a.b.c"))
	assert.False(t, WellFormed("a.b"))
	assert.False(t, WellFormed("a..c"))
	assert.False(t, WellFormed("garbage"))
}
