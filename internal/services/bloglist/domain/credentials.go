package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
	"github.com/reettakoskinen/fullstack-part5/internal/platform/id"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates a failed login. The message never
// reveals which part of the credential pair mismatched.
var ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "invalid username or password")

// TokenMinter issues a signed bearer token for a user.
type TokenMinter interface {
	Mint(userID, username string) (string, error)
}

// Session is the result of a successful login.
type Session struct {
	Token    string
	Username string
	Name     string
}

// CredentialServiceConfig overrides hashing cost, clock, and identifier
// generation, mainly for tests.
type CredentialServiceConfig struct {
	BcryptCost int
	Clock      func() time.Time
	NewID      func() (string, error)
}

// CredentialService registers users and authenticates username/password
// pairs into bearer tokens.
type CredentialService struct {
	users  UserStore
	tokens TokenMinter
	cost   int
	clock  func() time.Time
	newID  func() (string, error)
}

// NewCredentialService builds a credential service from a user store and
// a token minter.
func NewCredentialService(users UserStore, tokens TokenMinter, cfg CredentialServiceConfig) *CredentialService {
	cost := cfg.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = id.NewID
	}
	return &CredentialService{
		users:  users,
		tokens: tokens,
		cost:   cost,
		clock:  clock,
		newID:  newID,
	}
}

// Register validates registration input, hashes the password, and
// persists the new user. Username collisions surface as ErrUsernameTaken.
func (s *CredentialService) Register(ctx context.Context, input RegisterUserInput) (User, error) {
	if s == nil || s.users == nil {
		return User{}, errors.New("credential service is not configured")
	}

	normalized, err := NormalizeRegisterUserInput(input)
	if err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.newID()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := s.clock().UTC()
	u := User{
		ID:           userID,
		Username:     normalized.Username,
		Name:         normalized.Name,
		PasswordHash: string(hash),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := s.users.PutUser(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login authenticates a username/password pair and issues a bearer token
// carrying the user's identifier. Unknown usernames and wrong passwords
// fail with the same error.
func (s *CredentialService) Login(ctx context.Context, username, password string) (Session, error) {
	if s == nil || s.users == nil || s.tokens == nil {
		return Session{}, errors.New("credential service is not configured")
	}

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, apperrors.Wrap(apperrors.CodeInternal, "look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(u.ID, u.Username)
	if err != nil {
		return Session{}, fmt.Errorf("mint token: %w", err)
	}
	return Session{
		Token:    token,
		Username: u.Username,
		Name:     u.Name,
	}, nil
}

// ListUsers returns every user with its owned blogs denormalized in.
func (s *CredentialService) ListUsers(ctx context.Context) ([]UserWithBlogs, error) {
	if s == nil || s.users == nil {
		return nil, errors.New("credential service is not configured")
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
