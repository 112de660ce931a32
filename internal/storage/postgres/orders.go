package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
)

var orderColumns = []string{
	"o.id", "o.user_id", "o.tariff_id", "o.status", "o.project_name", "o.project_description",
	"o.reference_links", "o.requirements", "o.deadline", "o.attachments", "o.comments",
	"o.total_price::text", "o.is_deleted", "o.created_at", "o.updated_at",
	"t.id", "t.name", "t.description", "t.price::text", "t.features", "t.is_active", "t.created_at", "t.updated_at",
}

var orderOrdering = map[string]string{
	"created_at":  "o.created_at",
	"deadline":    "o.deadline",
	"total_price": "o.total_price",
}

const defaultOrderOrdering = "-created_at"

type orderRepository struct {
	db querier
}

func selectOrders() sq.SelectBuilder {
	return psql.Select(orderColumns...).From("orders o").Join("tariffs t ON t.id = o.tariff_id")
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o           model.Order
		t           model.Tariff
		totalPrice  string
		tariffPrice string
	)
	if err := row.Scan(
		&o.ID, &o.UserID, &o.TariffID, &o.Status, &o.ProjectName, &o.ProjectDescription,
		&o.ReferenceLinks, &o.Requirements, &o.Deadline, &o.Attachments, &o.Comments,
		&totalPrice, &o.IsDeleted, &o.CreatedAt, &o.UpdatedAt,
		&t.ID, &t.Name, &t.Description, &tariffPrice, &t.Features, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}

	var err error
	if o.TotalPrice, err = parseDecimal(totalPrice); err != nil {
		return nil, err
	}
	if t.Price, err = parseDecimal(tariffPrice); err != nil {
		return nil, err
	}
	o.ReferenceLinks = nonNilStrings(o.ReferenceLinks)
	o.Attachments = nonNilStrings(o.Attachments)
	t.Features = nonNilStrings(t.Features)
	o.Tariff = &t
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	values := map[string]any{
		"user_id":             order.UserID,
		"tariff_id":           order.TariffID,
		"status":              string(order.Status),
		"project_name":        order.ProjectName,
		"project_description": order.ProjectDescription,
		"reference_links":     nonNilStrings(order.ReferenceLinks),
		"requirements":        order.Requirements,
		"deadline":            order.Deadline,
		"attachments":         nonNilStrings(order.Attachments),
		"comments":            order.Comments,
		"total_price":         numeric(order.TotalPrice),
	}
	// Backdated rows come from the demo seeder.
	if !order.CreatedAt.IsZero() {
		values["created_at"] = order.CreatedAt
		values["updated_at"] = order.CreatedAt
	}
	query, args, err := psql.Insert("orders").
		SetMap(values).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert order: %w", err)
	}

	created := *order
	if err := r.db.QueryRow(ctx, query, args...).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		err = mapError(err)
		if errors.Is(err, domainErrors.ErrTariffInUse) {
			return nil, fmt.Errorf("tariff %d: %w", order.TariffID, domainErrors.ErrNotFound)
		}
		return nil, err
	}
	created.ReferenceLinks = nonNilStrings(created.ReferenceLinks)
	created.Attachments = nonNilStrings(created.Attachments)
	return &created, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	return r.getOne(ctx, sq.Eq{"o.id": id, "o.is_deleted": false})
}

func (r *orderRepository) GetAny(ctx context.Context, id int64) (*model.Order, error) {
	return r.getOne(ctx, sq.Eq{"o.id": id})
}

func (r *orderRepository) getOne(ctx context.Context, where sq.Eq) (*model.Order, error) {
	query, args, err := selectOrders().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select order: %w", err)
	}
	return scanOrder(r.db.QueryRow(ctx, query, args...))
}

func orderFilters(scope model.OrderScope, q model.OrderListQuery) sq.And {
	where := sq.And{sq.Eq{"o.is_deleted": false}}
	if scope.OwnerID != 0 {
		where = append(where, sq.Eq{"o.user_id": scope.OwnerID})
	}
	if q.Status != nil {
		where = append(where, sq.Eq{"o.status": string(*q.Status)})
	}
	if q.CreatedFrom != nil {
		where = append(where, sq.GtOrEq{"o.created_at": dayStart(*q.CreatedFrom)})
	}
	if q.CreatedTo != nil {
		where = append(where, sq.Lt{"o.created_at": nextDay(*q.CreatedTo)})
	}
	if q.DeadlineFrom != nil {
		where = append(where, sq.GtOrEq{"o.deadline": dayStart(*q.DeadlineFrom)})
	}
	if q.DeadlineTo != nil {
		where = append(where, sq.LtOrEq{"o.deadline": dayStart(*q.DeadlineTo)})
	}
	if q.Search != "" {
		where = append(where, searchPredicate(q.Search, "o.project_name", "o.project_description"))
	}
	return where
}

func (r *orderRepository) List(ctx context.Context, scope model.OrderScope, q model.OrderListQuery) (*model.PageResult[model.Order], error) {
	where := orderFilters(scope, q)

	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("orders o").Where(where))
	if err != nil {
		return nil, err
	}

	b := selectOrders().Where(where).
		OrderBy(orderingClauses(q.Ordering, orderOrdering, defaultOrderOrdering)...).
		OrderBy("o.id DESC")
	query, args, err := paginate(b, q.Page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.PageResult[model.Order]{Items: items, Total: total, Page: q.Page}, nil
}

func (r *orderRepository) Update(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	if patch.Empty() {
		return r.Get(ctx, id)
	}

	b := psql.Update("orders").Set("updated_at", sq.Expr("NOW()"))
	if patch.Status != nil {
		b = b.Set("status", string(*patch.Status))
	}
	if patch.ProjectName != nil {
		b = b.Set("project_name", *patch.ProjectName)
	}
	if patch.ProjectDescription != nil {
		b = b.Set("project_description", *patch.ProjectDescription)
	}
	if patch.ReferenceLinks != nil {
		b = b.Set("reference_links", nonNilStrings(*patch.ReferenceLinks))
	}
	if patch.Requirements != nil {
		b = b.Set("requirements", *patch.Requirements)
	}
	if patch.Deadline != nil {
		b = b.Set("deadline", *patch.Deadline)
	}
	if patch.Attachments != nil {
		b = b.Set("attachments", nonNilStrings(*patch.Attachments))
	}
	if patch.Comments != nil {
		b = b.Set("comments", *patch.Comments)
	}

	query, args, err := b.Where(sq.Eq{"id": id, "is_deleted": false}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update order: %w", err)
	}
	if err := r.execOne(ctx, query, args); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *orderRepository) SoftDelete(ctx context.Context, id int64) error {
	query, args, err := psql.Update("orders").
		Set("is_deleted", true).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete order: %w", err)
	}
	return r.execOne(ctx, query, args)
}

func (r *orderRepository) Restore(ctx context.Context, id int64) (*model.Order, error) {
	query, args, err := psql.Update("orders").
		Set("is_deleted", false).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build restore order: %w", err)
	}
	if err := r.execOne(ctx, query, args); err != nil {
		return nil, err
	}
	return r.GetAny(ctx, id)
}

// execOne runs a statement expected to touch exactly one row.
func (r *orderRepository) execOne(ctx context.Context, query string, args []any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
