package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/domain/repository"
)

type profileInput struct {
	Email       *string `json:"email" validate:"omitnil,required,email"`
	FirstName   *string `json:"first_name" validate:"omitnil,max=150"`
	LastName    *string `json:"last_name" validate:"omitnil,max=150"`
	Phone       *string `json:"phone" validate:"omitnil,max=15"`
	CompanyName *string `json:"company_name" validate:"omitnil,max=100"`
}

// UserUseCase serves profile operations of the authenticated caller.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Me returns the caller profile.
func (u *UserUseCase) Me(ctx context.Context, caller model.Subject) (*model.User, error) {
	if caller.Anonymous() {
		return nil, domainErrors.ErrUnauthenticated
	}
	return u.users.GetByID(ctx, caller.ID)
}

// UpdateProfile applies the patch to the caller profile.
func (u *UserUseCase) UpdateProfile(ctx context.Context, caller model.Subject, patch model.ProfilePatch) (*model.User, error) {
	if caller.Anonymous() {
		return nil, domainErrors.ErrUnauthenticated
	}
	if patch.Email != nil {
		trimmed := strings.TrimSpace(*patch.Email)
		patch.Email = &trimmed
	}
	if err := validateStruct(profileInput(patch)); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return u.users.GetByID(ctx, caller.ID)
	}
	return u.users.UpdateProfile(ctx, caller.ID, patch)
}

// Delete soft deletes the caller account.
func (u *UserUseCase) Delete(ctx context.Context, caller model.Subject) error {
	if caller.Anonymous() {
		return domainErrors.ErrUnauthenticated
	}
	return u.users.SoftDelete(ctx, caller.ID)
}

// Restore reactivates a soft deleted account. Staff only.
func (u *UserUseCase) Restore(ctx context.Context, caller model.Subject, userID int64) (*model.User, error) {
	if !caller.IsStaff {
		return nil, domainErrors.ErrForbidden
	}
	return u.users.Restore(ctx, userID)
}
