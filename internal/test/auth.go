package test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	pkgAuth "github.com/polkiloo/designstudio/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues readable "<kind>:<id>" tokens unless overridden.
type StrategyStub struct {
	IssueFn func(int64, pkgAuth.TokenKind) (string, error)
	ParseFn func(string, pkgAuth.TokenKind) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, kind pkgAuth.TokenKind) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, kind)
	}
	return fmt.Sprintf("%s:%d", kind, userID), nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string, kind pkgAuth.TokenKind) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token, kind)
	}
	prefix, raw, ok := strings.Cut(token, ":")
	if !ok || pkgAuth.TokenKind(prefix) != kind {
		return 0, pkgAuth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgAuth.ErrInvalidToken
	}
	return id, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SubjectResolverStub implements middleware subject resolution contract.
type SubjectResolverStub struct {
	Subjects  map[string]model.Subject
	Err       error
	ResolveFn func(context.Context, string) (model.Subject, error)
}

// ResolveSubject either delegates to override or looks the token up.
func (s SubjectResolverStub) ResolveSubject(ctx context.Context, token string) (model.Subject, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	if s.Err != nil {
		return model.Subject{}, s.Err
	}
	if subject, ok := s.Subjects[token]; ok {
		return subject, nil
	}
	return model.Subject{}, domainErrors.ErrUnauthenticated
}

// RecorderStub counts order lifecycle events.
type RecorderStub struct {
	Created   int
	Cancelled int
}

// OrderCreated increments created counter.
func (r *RecorderStub) OrderCreated() { r.Created++ }

// OrderCancelled increments cancelled counter.
func (r *RecorderStub) OrderCancelled() { r.Cancelled++ }

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
