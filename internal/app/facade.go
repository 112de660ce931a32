package app

import (
	"context"

	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/usecase"
)

// PortalFacade exposes use cases to the transport layer.
type PortalFacade struct {
	auth    *usecase.AuthUseCase
	users   *usecase.UserUseCase
	tariffs *usecase.TariffUseCase
	orders  *usecase.OrderUseCase
}

func NewPortalFacade(auth *usecase.AuthUseCase, users *usecase.UserUseCase, tariffs *usecase.TariffUseCase, orders *usecase.OrderUseCase) *PortalFacade {
	return &PortalFacade{auth: auth, users: users, tariffs: tariffs, orders: orders}
}

func (f *PortalFacade) Register(ctx context.Context, in model.Registration) (*model.User, model.TokenPair, error) {
	return f.auth.Register(ctx, in)
}

func (f *PortalFacade) ObtainTokens(ctx context.Context, username, password string) (model.TokenPair, error) {
	_, pair, err := f.auth.Authenticate(ctx, username, password)
	return pair, err
}

func (f *PortalFacade) RefreshAccess(ctx context.Context, refresh string) (string, error) {
	return f.auth.Refresh(ctx, refresh)
}

func (f *PortalFacade) ResolveSubject(ctx context.Context, token string) (model.Subject, error) {
	return f.auth.ResolveSubject(ctx, token)
}

func (f *PortalFacade) Me(ctx context.Context, caller model.Subject) (*model.User, error) {
	return f.users.Me(ctx, caller)
}

func (f *PortalFacade) UpdateProfile(ctx context.Context, caller model.Subject, patch model.ProfilePatch) (*model.User, error) {
	return f.users.UpdateProfile(ctx, caller, patch)
}

func (f *PortalFacade) DeleteAccount(ctx context.Context, caller model.Subject) error {
	return f.users.Delete(ctx, caller)
}

func (f *PortalFacade) RestoreUser(ctx context.Context, caller model.Subject, id int64) (*model.User, error) {
	return f.users.Restore(ctx, caller, id)
}

func (f *PortalFacade) Tariffs(ctx context.Context, query model.TariffListQuery) (*model.PageResult[model.Tariff], error) {
	return f.tariffs.List(ctx, query)
}

func (f *PortalFacade) Tariff(ctx context.Context, id int64) (*model.Tariff, error) {
	return f.tariffs.Get(ctx, id)
}

func (f *PortalFacade) CreateTariff(ctx context.Context, caller model.Subject, in model.NewTariff) (*model.Tariff, error) {
	return f.tariffs.Create(ctx, caller, in)
}

func (f *PortalFacade) UpdateTariff(ctx context.Context, caller model.Subject, id int64, patch model.TariffPatch) (*model.Tariff, error) {
	return f.tariffs.Update(ctx, caller, id, patch)
}

func (f *PortalFacade) DeleteTariff(ctx context.Context, caller model.Subject, id int64) error {
	return f.tariffs.Delete(ctx, caller, id)
}

func (f *PortalFacade) CreateOrder(ctx context.Context, caller model.Subject, in model.NewOrder) (*model.Order, error) {
	return f.orders.Create(ctx, caller, in)
}

func (f *PortalFacade) Order(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, caller, id)
}

func (f *PortalFacade) Orders(ctx context.Context, caller model.Subject, query model.OrderListQuery) (*model.PageResult[model.Order], error) {
	return f.orders.List(ctx, caller, query)
}

func (f *PortalFacade) UpdateOrder(ctx context.Context, caller model.Subject, id int64, patch model.OrderPatch) (*model.Order, error) {
	return f.orders.Update(ctx, caller, id, patch)
}

func (f *PortalFacade) DeleteOrder(ctx context.Context, caller model.Subject, id int64) error {
	return f.orders.Delete(ctx, caller, id)
}

func (f *PortalFacade) AdminOrder(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	return f.orders.AdminGet(ctx, caller, id)
}

func (f *PortalFacade) RestoreOrder(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	return f.orders.Restore(ctx, caller, id)
}
