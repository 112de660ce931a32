package repository

import (
	"context"

	"github.com/polkiloo/designstudio/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Get, List, Update and SoftDelete never see soft-deleted rows.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	// GetAny returns the order by primary key including soft-deleted rows.
	GetAny(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, scope model.OrderScope, query model.OrderListQuery) (*model.PageResult[model.Order], error)
	Update(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*model.Order, error)
}
