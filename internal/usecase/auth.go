package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/domain/repository"
	pkgAuth "github.com/restoflow/restoflow/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new user with login/password and returns auth token.
// Admin accounts are never self-served through registration.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if role == "" {
		role = model.RoleCustomer
	}
	if !model.ValidRole(role) || role == model.RoleAdmin {
		return nil, "", domainErrors.ErrInvalidRequest
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, hash, role)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the acting identity from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	userID, role, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Actor{}, err
	}
	if !model.ValidRole(model.Role(role)) {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return model.Actor{UserID: userID, Role: model.Role(role)}, nil
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
