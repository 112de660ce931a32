package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
)

var tariffColumns = []string{
	"id", "name", "description", "price::text", "features", "is_active", "created_at", "updated_at",
}

var tariffOrdering = map[string]string{
	"price": "price",
	"name":  "name",
}

const defaultTariffOrdering = "price"

type tariffRepository struct {
	db querier
}

func scanTariff(row pgx.Row) (*model.Tariff, error) {
	var (
		t     model.Tariff
		price string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &price, &t.Features, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	d, err := parseDecimal(price)
	if err != nil {
		return nil, err
	}
	t.Price = d
	if t.Features == nil {
		t.Features = []string{}
	}
	return &t, nil
}

func (r *tariffRepository) Create(ctx context.Context, tariff *model.Tariff) (*model.Tariff, error) {
	features := tariff.Features
	if features == nil {
		features = []string{}
	}
	query, args, err := psql.Insert("tariffs").
		Columns("name", "description", "price", "features", "is_active").
		Values(tariff.Name, tariff.Description, numeric(tariff.Price), features, tariff.IsActive).
		Suffix("RETURNING " + joinColumns(tariffColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert tariff: %w", err)
	}
	return scanTariff(r.db.QueryRow(ctx, query, args...))
}

func (r *tariffRepository) GetByID(ctx context.Context, id int64) (*model.Tariff, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *tariffRepository) GetByName(ctx context.Context, name string) (*model.Tariff, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

func (r *tariffRepository) getOne(ctx context.Context, where sq.Eq) (*model.Tariff, error) {
	query, args, err := psql.Select(tariffColumns...).From("tariffs").Where(where).OrderBy("id").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tariff: %w", err)
	}
	return scanTariff(r.db.QueryRow(ctx, query, args...))
}

func (r *tariffRepository) List(ctx context.Context, activeOnly bool, q model.TariffListQuery) (*model.PageResult[model.Tariff], error) {
	where := sq.And{}
	if activeOnly {
		where = append(where, sq.Eq{"is_active": true})
	}
	if q.IsActive != nil {
		where = append(where, sq.Eq{"is_active": *q.IsActive})
	}
	if q.MinPrice != nil {
		where = append(where, sq.Expr("price >= ?::text::numeric", q.MinPrice.String()))
	}
	if q.MaxPrice != nil {
		where = append(where, sq.Expr("price <= ?::text::numeric", q.MaxPrice.String()))
	}
	if q.Search != "" {
		where = append(where, searchPredicate(q.Search, "name", "description"))
	}

	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("tariffs").Where(where))
	if err != nil {
		return nil, err
	}

	b := psql.Select(tariffColumns...).From("tariffs").Where(where).
		OrderBy(orderingClauses(q.Ordering, tariffOrdering, defaultTariffOrdering)...).
		OrderBy("id ASC")
	query, args, err := paginate(b, q.Page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tariffs: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Tariff, 0)
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.PageResult[model.Tariff]{Items: items, Total: total, Page: q.Page}, nil
}

func (r *tariffRepository) Update(ctx context.Context, id int64, patch model.TariffPatch) (*model.Tariff, error) {
	b := psql.Update("tariffs").Set("updated_at", sq.Expr("NOW()"))
	if patch.Name != nil {
		b = b.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		b = b.Set("description", *patch.Description)
	}
	if patch.Price != nil {
		b = b.Set("price", numeric(*patch.Price))
	}
	if patch.Features != nil {
		features := *patch.Features
		if features == nil {
			features = []string{}
		}
		b = b.Set("features", features)
	}
	if patch.IsActive != nil {
		b = b.Set("is_active", *patch.IsActive)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + joinColumns(tariffColumns)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update tariff: %w", err)
	}
	return scanTariff(r.db.QueryRow(ctx, query, args...))
}

func (r *tariffRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("tariffs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete tariff: %w", err)
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
