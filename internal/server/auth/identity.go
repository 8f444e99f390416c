// Package auth issues and verifies access tokens, hashes passwords, and
// carries the caller's identity through a request context.
package auth

import "context"

// Identity is an authenticated caller as asserted by a verified token.
type Identity struct {
	ID    string
	Email string
	Name  string
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// IdentityFromContext returns the identity attached by WithIdentity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || identity.ID == "" {
		return Identity{}, false
	}
	return identity, true
}
