package domain

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
)

var (
	// ErrTokenMissing indicates a mutating request without a bearer token.
	ErrTokenMissing = apperrors.New(apperrors.CodeTokenMissing, "token missing")
	// ErrIdentityNotFound indicates a valid token whose subject no longer
	// resolves to a user. Treated identically to an invalid token.
	ErrIdentityNotFound = apperrors.New(apperrors.CodeIdentityNotFound, "identity not found")
)

// TokenVerifier verifies a bearer token and returns its subject user id.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// Gate resolves bearer tokens into acting identities.
//
// Every mutating operation passes through Resolve before any write. The
// gate reads only the user collection and has no side effects.
type Gate struct {
	tokens TokenVerifier
	users  UserStore
}

// NewGate builds a gate from a token verifier and a user store.
func NewGate(tokens TokenVerifier, users UserStore) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Resolve verifies the bearer token and confirms its subject still
// exists. A missing, malformed, expired, or orphaned token all fail
// with an unauthenticated error.
func (g *Gate) Resolve(ctx context.Context, bearer string) (Identity, error) {
	if g == nil || g.tokens == nil || g.users == nil {
		return Identity{}, errors.New("gate is not configured")
	}

	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return Identity{}, ErrTokenMissing
	}

	userID, err := g.tokens.Verify(bearer)
	if err != nil {
		return Identity{}, err
	}

	if _, err := g.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, ErrIdentityNotFound
		}
		return Identity{}, apperrors.Wrap(apperrors.CodeInternal, "resolve identity", err)
	}

	return Identity{UserID: userID}, nil
}
