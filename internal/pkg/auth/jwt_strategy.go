package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 24 * time.Hour
)

type tokenClaims struct {
	Kind TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTStrategy issues and verifies HS256 signed JSON Web Tokens.
type JWTStrategy struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	access := opts.AccessTTL
	if access <= 0 {
		access = defaultAccessTTL
	}
	refresh := opts.RefreshTTL
	if refresh <= 0 {
		refresh = defaultRefreshTTL
	}
	return &JWTStrategy{secret: []byte(secret), accessTTL: access, refreshTTL: refresh, now: time.Now}
}

// IssueToken generates a signed token of the given kind for the user.
func (s *JWTStrategy) IssueToken(userID int64, kind TokenKind) (string, error) {
	ttl, err := s.ttlFor(kind)
	if err != nil {
		return "", err
	}
	now := s.now()
	claims := tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates token of the expected kind and returns encoded user ID.
func (s *JWTStrategy) ParseToken(token string, kind TokenKind) (int64, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, errors.Join(ErrInvalidToken, err)
	}
	if claims.Kind != kind {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}

func (s *JWTStrategy) ttlFor(kind TokenKind) (time.Duration, error) {
	switch kind {
	case TokenAccess:
		return s.accessTTL, nil
	case TokenRefresh:
		return s.refreshTTL, nil
	default:
		return 0, fmt.Errorf("unknown token kind %q", kind)
	}
}
