package auth

import "context"

// Identity is the authenticated caller as carried by the access token.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type identityKey struct{}

func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// Owned is implemented by documents that record their author.
type Owned interface {
	OwnerID() string
}

func IsOwner(resource Owned, authID string) bool {
	return authID != "" && resource.OwnerID() == authID
}
