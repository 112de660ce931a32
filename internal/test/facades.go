package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
)

// SampleTariff returns a deterministic active tariff.
func SampleTariff() model.Tariff {
	return model.Tariff{
		ID:          1,
		Name:        "Базовый",
		Description: "Landing page",
		Price:       decimal.RequireFromString("999.99"),
		Features:    []string{"design"},
		IsActive:    true,
		CreatedAt:   time.Unix(0, 0).UTC(),
		UpdatedAt:   time.Unix(0, 0).UTC(),
	}
}

// SampleOrder returns a deterministic order owned by userID.
func SampleOrder(id, userID int64) model.Order {
	tariff := SampleTariff()
	deadline := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	return model.Order{
		ID:                 id,
		UserID:             userID,
		TariffID:           tariff.ID,
		Tariff:             &tariff,
		Status:             model.OrderStatusNew,
		ProjectName:        "Site",
		ProjectDescription: "Company site",
		ReferenceLinks:     []string{"https://example.com"},
		Requirements:       "Responsive",
		Deadline:           &deadline,
		Attachments:        []string{},
		TotalPrice:         tariff.Price,
		CreatedAt:          time.Unix(0, 0).UTC(),
		UpdatedAt:          time.Unix(0, 0).UTC(),
	}
}

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn func(context.Context, model.Registration) (*model.User, model.TokenPair, error)
	ObtainFn   func(context.Context, string, string) (model.TokenPair, error)
	RefreshFn  func(context.Context, string) (string, error)
}

// Register delegates to override or echoes the registration.
func (s AuthFacadeStub) Register(ctx context.Context, in model.Registration) (*model.User, model.TokenPair, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Username: in.Username, Email: in.Email}, model.TokenPair{Access: "access", Refresh: "refresh"}, nil
}

// ObtainTokens delegates to override or returns a fixed pair.
func (s AuthFacadeStub) ObtainTokens(ctx context.Context, username, password string) (model.TokenPair, error) {
	if s.ObtainFn != nil {
		return s.ObtainFn(ctx, username, password)
	}
	return model.TokenPair{Access: "access", Refresh: "refresh"}, nil
}

// RefreshAccess delegates to override or returns a fixed token.
func (s AuthFacadeStub) RefreshAccess(ctx context.Context, refresh string) (string, error) {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, refresh)
	}
	return "access", nil
}

// UserFacadeStub simulates profile operations.
type UserFacadeStub struct {
	MeFn      func(context.Context, model.Subject) (*model.User, error)
	UpdateFn  func(context.Context, model.Subject, model.ProfilePatch) (*model.User, error)
	DeleteFn  func(context.Context, model.Subject) error
	RestoreFn func(context.Context, model.Subject, int64) (*model.User, error)
}

// Me returns the caller as a user record.
func (s UserFacadeStub) Me(ctx context.Context, caller model.Subject) (*model.User, error) {
	if s.MeFn != nil {
		return s.MeFn(ctx, caller)
	}
	return &model.User{ID: caller.ID, Username: "user", IsStaff: caller.IsStaff}, nil
}

// UpdateProfile delegates to override or applies the email.
func (s UserFacadeStub) UpdateProfile(ctx context.Context, caller model.Subject, patch model.ProfilePatch) (*model.User, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, caller, patch)
	}
	user := &model.User{ID: caller.ID, Username: "user"}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	return user, nil
}

// DeleteAccount delegates to override.
func (s UserFacadeStub) DeleteAccount(ctx context.Context, caller model.Subject) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, caller)
	}
	return nil
}

// RestoreUser delegates to override or returns a restored user.
func (s UserFacadeStub) RestoreUser(ctx context.Context, caller model.Subject, id int64) (*model.User, error) {
	if s.RestoreFn != nil {
		return s.RestoreFn(ctx, caller, id)
	}
	return &model.User{ID: id, Username: "restored"}, nil
}

// TariffFacadeStub simulates the catalog.
type TariffFacadeStub struct {
	ListFn   func(context.Context, model.TariffListQuery) (*model.PageResult[model.Tariff], error)
	GetFn    func(context.Context, int64) (*model.Tariff, error)
	CreateFn func(context.Context, model.Subject, model.NewTariff) (*model.Tariff, error)
	UpdateFn func(context.Context, model.Subject, int64, model.TariffPatch) (*model.Tariff, error)
	DeleteFn func(context.Context, model.Subject, int64) error
}

// Tariffs returns a single sample tariff unless overridden.
func (s TariffFacadeStub) Tariffs(ctx context.Context, query model.TariffListQuery) (*model.PageResult[model.Tariff], error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, query)
	}
	return &model.PageResult[model.Tariff]{Items: []model.Tariff{SampleTariff()}, Total: 1, Page: query.Page}, nil
}

// Tariff returns the sample tariff for id 1.
func (s TariffFacadeStub) Tariff(ctx context.Context, id int64) (*model.Tariff, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if id != 1 {
		return nil, domainErrors.ErrNotFound
	}
	t := SampleTariff()
	return &t, nil
}

// CreateTariff echoes the input as a stored tariff.
func (s TariffFacadeStub) CreateTariff(ctx context.Context, caller model.Subject, in model.NewTariff) (*model.Tariff, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, caller, in)
	}
	return &model.Tariff{ID: 2, Name: in.Name, Description: in.Description, Price: in.Price, Features: in.Features, IsActive: in.IsActive}, nil
}

// UpdateTariff delegates to override or returns the sample tariff.
func (s TariffFacadeStub) UpdateTariff(ctx context.Context, caller model.Subject, id int64, patch model.TariffPatch) (*model.Tariff, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, caller, id, patch)
	}
	t := SampleTariff()
	t.ID = id
	if patch.Price != nil {
		t.Price = *patch.Price
	}
	return &t, nil
}

// DeleteTariff delegates to override.
func (s TariffFacadeStub) DeleteTariff(ctx context.Context, caller model.Subject, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, caller, id)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn   func(context.Context, model.Subject, model.NewOrder) (*model.Order, error)
	GetFn      func(context.Context, model.Subject, int64) (*model.Order, error)
	ListFn     func(context.Context, model.Subject, model.OrderListQuery) (*model.PageResult[model.Order], error)
	UpdateFn   func(context.Context, model.Subject, int64, model.OrderPatch) (*model.Order, error)
	DeleteFn   func(context.Context, model.Subject, int64) error
	AdminGetFn func(context.Context, model.Subject, int64) (*model.Order, error)
	RestoreFn  func(context.Context, model.Subject, int64) (*model.Order, error)
}

// CreateOrder returns a sample order owned by the caller.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, caller model.Subject, in model.NewOrder) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, caller, in)
	}
	o := SampleOrder(1, caller.ID)
	o.ProjectName = in.ProjectName
	return &o, nil
}

// Order returns a sample order owned by the caller.
func (s OrderFacadeStub) Order(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, caller, id)
	}
	o := SampleOrder(id, caller.ID)
	return &o, nil
}

// Orders returns one sample order unless overridden.
func (s OrderFacadeStub) Orders(ctx context.Context, caller model.Subject, query model.OrderListQuery) (*model.PageResult[model.Order], error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, caller, query)
	}
	return &model.PageResult[model.Order]{Items: []model.Order{SampleOrder(1, caller.ID)}, Total: 1, Page: query.Page}, nil
}

// UpdateOrder delegates to override or applies comments to a sample order.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, caller model.Subject, id int64, patch model.OrderPatch) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, caller, id, patch)
	}
	o := SampleOrder(id, caller.ID)
	if patch.Comments != nil {
		o.Comments = *patch.Comments
	}
	return &o, nil
}

// DeleteOrder delegates to override.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, caller model.Subject, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, caller, id)
	}
	return nil
}

// AdminOrder returns a deleted sample order.
func (s OrderFacadeStub) AdminOrder(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	if s.AdminGetFn != nil {
		return s.AdminGetFn(ctx, caller, id)
	}
	o := SampleOrder(id, 7)
	o.IsDeleted = true
	return &o, nil
}

// RestoreOrder returns a restored sample order.
func (s OrderFacadeStub) RestoreOrder(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	if s.RestoreFn != nil {
		return s.RestoreFn(ctx, caller, id)
	}
	o := SampleOrder(id, 7)
	return &o, nil
}

// PortalFacadeStub aggregates all facade stubs.
type PortalFacadeStub struct {
	AuthFacadeStub
	UserFacadeStub
	TariffFacadeStub
	OrderFacadeStub
}

// HealthCheckerStub reports the configured error.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
