package repository

import (
	"context"

	"github.com/polkiloo/designstudio/internal/domain/model"
)

// UserRepository describes persistence operations for users.
// Lookups skip soft-deleted accounts unless stated otherwise.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) (*model.User, error)
	SoftDelete(ctx context.Context, id int64) error
	// Restore clears the deleted flag and returns the user regardless of its previous state.
	Restore(ctx context.Context, id int64) (*model.User, error)
}
