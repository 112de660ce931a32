package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/domain/repository"
	pkgAuth "github.com/polkiloo/designstudio/internal/pkg/auth"
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

// Register creates a new customer account and returns a token pair.
func (u *AuthUseCase) Register(ctx context.Context, in model.Registration) (*model.User, model.TokenPair, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, model.TokenPair{}, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
		return nil, model.TokenPair{}, domainErrors.FieldError("password", "ensure this field has no more than 72 bytes")
	}
	if err != nil {
		return nil, model.TokenPair{}, err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		CompanyName:  in.CompanyName,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, model.TokenPair{}, domainErrors.ErrAlreadyExists
		}
		return nil, model.TokenPair{}, err
	}

	pair, err := u.issuePair(usr.ID)
	if err != nil {
		return nil, model.TokenPair{}, err
	}

	return usr, pair, nil
}

// Authenticate validates credentials and returns a token pair.
func (u *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*model.User, model.TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, model.TokenPair{}, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, model.TokenPair{}, domainErrors.ErrInvalidCredentials
		}
		return nil, model.TokenPair{}, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, model.TokenPair{}, domainErrors.ErrInvalidCredentials
	}

	pair, err := u.issuePair(usr.ID)
	if err != nil {
		return nil, model.TokenPair{}, err
	}

	return usr, pair, nil
}

// Refresh exchanges a refresh token for a new access token.
func (u *AuthUseCase) Refresh(ctx context.Context, refresh string) (string, error) {
	userID, err := u.parse(refresh, pkgAuth.TokenRefresh)
	if err != nil {
		return "", err
	}
	if _, err := u.activeUser(ctx, userID); err != nil {
		return "", err
	}
	return u.tokens.IssueToken(userID, pkgAuth.TokenAccess)
}

// ResolveSubject maps an access token to the caller identity.
// Unknown, deleted or malformed subjects yield ErrUnauthenticated.
func (u *AuthUseCase) ResolveSubject(ctx context.Context, token string) (model.Subject, error) {
	userID, err := u.parse(token, pkgAuth.TokenAccess)
	if err != nil {
		return model.Subject{}, err
	}
	usr, err := u.activeUser(ctx, userID)
	if err != nil {
		return model.Subject{}, err
	}
	return usr.Subject(), nil
}

func (u *AuthUseCase) parse(token string, kind pkgAuth.TokenKind) (int64, error) {
	if token == "" {
		return 0, domainErrors.ErrUnauthenticated
	}
	userID, err := u.tokens.ParseToken(token, kind)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrInvalidToken) {
			return 0, fmt.Errorf("%w: %w", domainErrors.ErrUnauthenticated, err)
		}
		return 0, err
	}
	return userID, nil
}

func (u *AuthUseCase) activeUser(ctx context.Context, id int64) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}
	return usr, nil
}

func (u *AuthUseCase) issuePair(userID int64) (model.TokenPair, error) {
	access, err := u.tokens.IssueToken(userID, pkgAuth.TokenAccess)
	if err != nil {
		return model.TokenPair{}, err
	}
	refresh, err := u.tokens.IssueToken(userID, pkgAuth.TokenRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{Access: access, Refresh: refresh}, nil
}
