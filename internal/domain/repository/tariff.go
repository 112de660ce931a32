package repository

import (
	"context"

	"github.com/polkiloo/designstudio/internal/domain/model"
)

// TariffRepository describes persistence operations for the tariff catalog.
type TariffRepository interface {
	Create(ctx context.Context, tariff *model.Tariff) (*model.Tariff, error)
	GetByID(ctx context.Context, id int64) (*model.Tariff, error)
	GetByName(ctx context.Context, name string) (*model.Tariff, error)
	List(ctx context.Context, activeOnly bool, query model.TariffListQuery) (*model.PageResult[model.Tariff], error)
	Update(ctx context.Context, id int64, patch model.TariffPatch) (*model.Tariff, error)
	Delete(ctx context.Context, id int64) error
}
