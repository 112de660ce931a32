package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/domain/repository"
)

// errCancelledOrder is returned for any mutation of a CANCELLED order.
var errCancelledOrder = domainErrors.NewValidationError("cannot update a cancelled order")

// OrderRecorder receives order lifecycle events for metrics.
type OrderRecorder interface {
	OrderCreated()
	OrderCancelled()
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	tariffs  repository.TariffRepository
	tx       repository.Transactor
	recorder OrderRecorder
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, tariffs repository.TariffRepository, tx repository.Transactor, recorder OrderRecorder) *OrderUseCase {
	return &OrderUseCase{orders: orders, tariffs: tariffs, tx: tx, recorder: recorder}
}

// Create places a new order owned by the caller with the tariff price snapshotted.
func (u *OrderUseCase) Create(ctx context.Context, caller model.Subject, in model.NewOrder) (*model.Order, error) {
	if caller.Anonymous() {
		return nil, domainErrors.ErrUnauthenticated
	}
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	tariff, err := u.tariffs.GetByID(ctx, in.TariffID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("tariff %d: %w", in.TariffID, domainErrors.ErrNotFound)
		}
		return nil, err
	}

	order, err := u.orders.Create(ctx, &model.Order{
		UserID:             caller.ID,
		TariffID:           tariff.ID,
		Tariff:             tariff,
		Status:             model.OrderStatusNew,
		ProjectName:        in.ProjectName,
		ProjectDescription: in.ProjectDescription,
		ReferenceLinks:     nonNil(in.ReferenceLinks),
		Requirements:       in.Requirements,
		Deadline:           in.Deadline,
		Attachments:        nonNil(in.Attachments),
		Comments:           in.Comments,
		TotalPrice:         tariff.Price,
	})
	if err != nil {
		return nil, err
	}

	u.recorder.OrderCreated()
	return order, nil
}

// Get returns a visible order to its owner or staff.
func (u *OrderUseCase) Get(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Authorized(caller, order) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// List returns non-deleted orders visible to the caller: all for staff, own otherwise.
func (u *OrderUseCase) List(ctx context.Context, caller model.Subject, query model.OrderListQuery) (*model.PageResult[model.Order], error) {
	if caller.Anonymous() {
		return nil, domainErrors.ErrUnauthenticated
	}
	if query.Status != nil && !query.Status.Valid() {
		return nil, domainErrors.FieldError("status", fmt.Sprintf("%q is not a valid choice", *query.Status))
	}

	scope := model.OrderScope{}
	if !caller.IsStaff {
		scope.OwnerID = caller.ID
	}
	return u.orders.List(ctx, scope, query)
}

// Update applies a partial update. Staff may change every mutable field; owners
// lose status and deadline from their patch without an error.
func (u *OrderUseCase) Update(ctx context.Context, caller model.Subject, id int64, patch model.OrderPatch) (*model.Order, error) {
	var (
		updated   *model.Order
		cancelled bool
	)
	err := u.tx.WithinTx(ctx, func(repos repository.Factory) error {
		current, err := repos.Orders().Get(ctx, id)
		if err != nil {
			return err
		}
		if !Authorized(caller, current) {
			return domainErrors.ErrForbidden
		}
		if err := validateStruct(patch); err != nil {
			return err
		}
		if current.Status == model.OrderStatusCancelled {
			return errCancelledOrder
		}

		if !caller.IsStaff {
			patch.Status = nil
			patch.Deadline = nil
		}
		if patch.ProjectName != nil {
			trimmed := strings.TrimSpace(*patch.ProjectName)
			patch.ProjectName = &trimmed
		}
		if patch.Empty() {
			updated = current
			return nil
		}

		updated, err = repos.Orders().Update(ctx, id, patch)
		if err != nil {
			return err
		}
		cancelled = patch.Status != nil && *patch.Status == model.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled {
		u.recorder.OrderCancelled()
	}
	return updated, nil
}

// Delete soft deletes the order. Deleting an already deleted order reports ErrNotFound.
func (u *OrderUseCase) Delete(ctx context.Context, caller model.Subject, id int64) error {
	return u.tx.WithinTx(ctx, func(repos repository.Factory) error {
		order, err := repos.Orders().Get(ctx, id)
		if err != nil {
			return err
		}
		if !Authorized(caller, order) {
			return domainErrors.ErrForbidden
		}
		return repos.Orders().SoftDelete(ctx, id)
	})
}

// AdminGet returns the order by primary key including soft deleted ones. Staff only.
func (u *OrderUseCase) AdminGet(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	if !caller.IsStaff {
		return nil, domainErrors.ErrForbidden
	}
	return u.orders.GetAny(ctx, id)
}

// Restore clears the soft delete flag. Staff only.
func (u *OrderUseCase) Restore(ctx context.Context, caller model.Subject, id int64) (*model.Order, error) {
	if !caller.IsStaff {
		return nil, domainErrors.ErrForbidden
	}
	return u.orders.Restore(ctx, id)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
