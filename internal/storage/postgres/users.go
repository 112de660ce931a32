package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
)

var userColumns = []string{
	"id", "username", "email", "first_name", "last_name", "phone", "company_name",
	"password_hash", "is_staff", "is_deleted", "created_at", "updated_at",
}

type userRepository struct {
	db querier
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.CompanyName,
		&u.PasswordHash, &u.IsStaff, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query, args, err := psql.Insert("users").
		Columns("username", "email", "first_name", "last_name", "phone", "company_name", "password_hash", "is_staff").
		Values(user.Username, user.Email, user.FirstName, user.LastName, user.Phone, user.CompanyName, user.PasswordHash, user.IsStaff).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	created := *user
	if err := r.db.QueryRow(ctx, query, args...).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &created, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username, "is_deleted": false})
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id, "is_deleted": false})
}

func (r *userRepository) getOne(ctx context.Context, where sq.Eq) (*model.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}
	return scanUser(r.db.QueryRow(ctx, query, args...))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) (*model.User, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	b := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))
	if patch.Email != nil {
		b = b.Set("email", *patch.Email)
	}
	if patch.FirstName != nil {
		b = b.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		b = b.Set("last_name", *patch.LastName)
	}
	if patch.Phone != nil {
		b = b.Set("phone", *patch.Phone)
	}
	if patch.CompanyName != nil {
		b = b.Set("company_name", *patch.CompanyName)
	}

	query, args, err := b.Where(sq.Eq{"id": id, "is_deleted": false}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user: %w", err)
	}
	return scanUser(r.db.QueryRow(ctx, query, args...))
}

func (r *userRepository) SoftDelete(ctx context.Context, id int64) error {
	query, args, err := psql.Update("users").
		Set("is_deleted", true).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) Restore(ctx context.Context, id int64) (*model.User, error) {
	query, args, err := psql.Update("users").
		Set("is_deleted", false).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build restore user: %w", err)
	}
	return scanUser(r.db.QueryRow(ctx, query, args...))
}
