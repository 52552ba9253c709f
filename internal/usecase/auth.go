package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	"github.com/trivima/assetstore/internal/domain/repository"
	pkgAuth "github.com/trivima/assetstore/internal/pkg/auth"
)

const minPasswordLength = 8

// AdminCredentials is the single administrator account configured for the store.
type AdminCredentials struct {
	Email    string
	Password string
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	admin  AdminCredentials
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, admin AdminCredentials) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, admin: admin}
}

// Register creates a new customer and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: please enter a valid email", domainErrors.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: please enter a strong password", domainErrors.ErrValidation)
	}

	hash, err := u.hasher.Hash(password)
	if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
		return nil, "", fmt.Errorf("%w: password is too long", domainErrors.ErrValidation)
	}
	if err != nil {
		return nil, "", err
	}

	usr := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Identity{UserID: usr.ID})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates customer credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(pkgAuth.Identity{UserID: usr.ID})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// AuthenticateAdmin checks the configured administrator credentials and returns an admin token.
func (u *AuthUseCase) AuthenticateAdmin(email, password string) (string, error) {
	if u.admin.Email == "" || u.admin.Password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(email)), []byte(u.admin.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.admin.Password)) == 1
	if !emailOK || !passOK {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(pkgAuth.Identity{Admin: true})
}

// ParseToken extracts the identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Identity, error) {
	if token == "" {
		return pkgAuth.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
