package handlers

import (
	"context"

	"github.com/polkiloo/designstudio/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in model.Registration) (*model.User, model.TokenPair, error)
	ObtainTokens(ctx context.Context, username, password string) (model.TokenPair, error)
	RefreshAccess(ctx context.Context, refresh string) (string, error)
}

// UserFacade covers self-service profile operations and staff restore.
type UserFacade interface {
	Me(ctx context.Context, caller model.Subject) (*model.User, error)
	UpdateProfile(ctx context.Context, caller model.Subject, patch model.ProfilePatch) (*model.User, error)
	DeleteAccount(ctx context.Context, caller model.Subject) error
	RestoreUser(ctx context.Context, caller model.Subject, id int64) (*model.User, error)
}

// TariffFacade serves the catalog.
type TariffFacade interface {
	Tariffs(ctx context.Context, query model.TariffListQuery) (*model.PageResult[model.Tariff], error)
	Tariff(ctx context.Context, id int64) (*model.Tariff, error)
	CreateTariff(ctx context.Context, caller model.Subject, in model.NewTariff) (*model.Tariff, error)
	UpdateTariff(ctx context.Context, caller model.Subject, id int64, patch model.TariffPatch) (*model.Tariff, error)
	DeleteTariff(ctx context.Context, caller model.Subject, id int64) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, caller model.Subject, in model.NewOrder) (*model.Order, error)
	Order(ctx context.Context, caller model.Subject, id int64) (*model.Order, error)
	Orders(ctx context.Context, caller model.Subject, query model.OrderListQuery) (*model.PageResult[model.Order], error)
	UpdateOrder(ctx context.Context, caller model.Subject, id int64, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, caller model.Subject, id int64) error
	AdminOrder(ctx context.Context, caller model.Subject, id int64) (*model.Order, error)
	RestoreOrder(ctx context.Context, caller model.Subject, id int64) (*model.Order, error)
}

// PortalFacade aggregates the full set of operations used across handlers.
type PortalFacade interface {
	AuthFacade
	UserFacade
	TariffFacade
	OrderFacade
}

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
