// Package token mints and verifies the bearer tokens that carry blog
// ownership identity between login and mutating requests.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
)

const defaultIssuer = "bloglist"

// tokenEnv holds raw env values before post-parse validation.
type tokenEnv struct {
	Secret string        `env:"BLOGLIST_TOKEN_SECRET"`
	Issuer string        `env:"BLOGLIST_TOKEN_ISSUER"`
	TTL    time.Duration `env:"BLOGLIST_TOKEN_TTL" envDefault:"1h"`
}

// Config defines how bearer tokens are signed and verified.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// claims is the internal claims type used for JWT parsing.
type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// LoadConfigFromEnv reads token signing configuration.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw tokenEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse token env: %w", err)
	}
	secret := strings.TrimSpace(raw.Secret)
	if secret == "" {
		return Config{}, fmt.Errorf("BLOGLIST_TOKEN_SECRET is required")
	}
	issuer := strings.TrimSpace(raw.Issuer)
	if issuer == "" {
		issuer = defaultIssuer
	}
	ttl := raw.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return Config{
		Secret: []byte(secret),
		Issuer: issuer,
		TTL:    ttl,
		Now:    now,
	}, nil
}

// Mint issues a signed HS256 token whose subject is the user identifier.
func (c Config) Mint(userID, username string) (string, error) {
	if len(c.Secret) == 0 {
		return "", errors.New("token signer is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := c.nowUTC()
	ttl := c.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	issuer := c.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: strings.TrimSpace(username),
	})
	signed, err := tok.SignedString(c.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the subject user
// identifier. Any structural, signature, issuer, or expiry failure maps
// to an unauthenticated error.
func (c Config) Verify(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.New(apperrors.CodeTokenMissing, "token missing")
	}
	if len(c.Secret) == 0 {
		return "", errors.New("token verifier is not configured")
	}
	issuer := c.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(token *jwt.Token) (any, error) {
		return c.Secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.nowUTC),
	)
	if err != nil {
		return "", mapJWTError(err)
	}

	subject := strings.TrimSpace(parsed.Subject)
	if subject == "" {
		return "", apperrors.New(apperrors.CodeTokenInvalid, "token invalid")
	}
	return subject, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperrors.Wrap(apperrors.CodeTokenInvalid, "token expired", err)
	}
	return apperrors.Wrap(apperrors.CodeTokenInvalid, "token invalid", err)
}

// nowUTC resolves current time for deterministic verification.
func (c Config) nowUTC() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}
