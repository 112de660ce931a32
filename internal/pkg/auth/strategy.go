package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

type Strategy interface {
	IssueToken(userID int64, kind TokenKind) (string, error)
	ParseToken(token string, kind TokenKind) (int64, error)
	Name() string
}

type Options struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}
