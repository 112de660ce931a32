package auth

import (
	"testing"
	"time"

	"github.com/polkiloo/designstudio/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{
		JWTSecret:       "top-secret",
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: 12 * time.Hour,
	}})
	jwtStrategy, ok := strategy.(*JWTStrategy)
	if !ok {
		t.Fatalf("expected *JWTStrategy, got %T", strategy)
	}
	if string(jwtStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(jwtStrategy.secret))
	}
	if jwtStrategy.accessTTL != 5*time.Minute {
		t.Fatalf("unexpected access ttl: %s", jwtStrategy.accessTTL)
	}
	if jwtStrategy.refreshTTL != 12*time.Hour {
		t.Fatalf("unexpected refresh ttl: %s", jwtStrategy.refreshTTL)
	}
}
