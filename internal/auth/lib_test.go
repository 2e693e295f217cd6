package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	password := "secret1"

	hashed, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)

	assert.True(t, CheckPasswordHash(hashed, password))
	assert.False(t, CheckPasswordHash(hashed, "wrong1"))
	assert.False(t, CheckPasswordHash("not-a-bcrypt-hash", password))

	again, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "hashes are salted")
}

func TestRandomString(t *testing.T) {
	s, err := RandomString(64)
	require.NoError(t, err)
	assert.Len(t, s, 64)
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "unexpected rune %q", r)
	}
}

func TestGenerateResetToken(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		rt, err := GenerateResetToken(now)
		require.NoError(t, err)

		assert.Len(t, rt.Token, resetTokenLength)
		assert.Equal(t, now.Add(time.Hour), rt.ExpiresAt)

		_, dup := seen[rt.Token]
		require.False(t, dup, "token generated twice")
		seen[rt.Token] = struct{}{}
	}
}

type ownedDoc string

func (o ownedDoc) OwnerID() string { return string(o) }

func TestIsOwner(t *testing.T) {
	doc := ownedDoc("6650f1c2a1b2c3d4e5f60718")

	assert.True(t, IsOwner(doc, "6650f1c2a1b2c3d4e5f60718"))
	assert.False(t, IsOwner(doc, "6650f1c2a1b2c3d4e5f60719"))
	assert.False(t, IsOwner(doc, ""))
	assert.False(t, IsOwner(ownedDoc(""), ""))
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := ContextWithIdentity(context.Background(), Identity{ID: "1", Name: "alice"})
	got, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, Identity{ID: "1", Name: "alice"}, got)
}
