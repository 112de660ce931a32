package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/domain/repository"
)

// maxPrice is the first value that no longer fits NUMERIC(10,2).
var maxPrice = decimal.New(1, 8)

type tariffPatchInput struct {
	Name     *string   `json:"name" validate:"omitnil,notblank,max=100"`
	Features *[]string `json:"features" validate:"omitnil,dive,notblank"`
}

// TariffUseCase serves the public catalog and staff maintenance of tariffs.
type TariffUseCase struct {
	tariffs repository.TariffRepository
}

// NewTariffUseCase constructs TariffUseCase.
func NewTariffUseCase(tariffs repository.TariffRepository) *TariffUseCase {
	return &TariffUseCase{tariffs: tariffs}
}

// List returns active tariffs matching the query.
func (u *TariffUseCase) List(ctx context.Context, query model.TariffListQuery) (*model.PageResult[model.Tariff], error) {
	if query.MinPrice != nil && query.MaxPrice != nil && query.MinPrice.GreaterThan(*query.MaxPrice) {
		return nil, domainErrors.FieldError("min_price", "must not exceed max_price")
	}
	return u.tariffs.List(ctx, true, query)
}

// Get returns an active tariff. Inactive tariffs are hidden from the catalog.
func (u *TariffUseCase) Get(ctx context.Context, id int64) (*model.Tariff, error) {
	tariff, err := u.tariffs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tariff.IsActive {
		return nil, domainErrors.ErrNotFound
	}
	return tariff, nil
}

// Create adds a tariff to the catalog. Staff only.
func (u *TariffUseCase) Create(ctx context.Context, caller model.Subject, in model.NewTariff) (*model.Tariff, error) {
	if !caller.IsStaff {
		return nil, domainErrors.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if in.Features == nil {
		in.Features = []string{}
	}

	return u.tariffs.Create(ctx, &model.Tariff{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Features:    in.Features,
		IsActive:    in.IsActive,
	})
}

// Update changes tariff fields. Existing orders keep their price snapshot. Staff only.
func (u *TariffUseCase) Update(ctx context.Context, caller model.Subject, id int64, patch model.TariffPatch) (*model.Tariff, error) {
	if !caller.IsStaff {
		return nil, domainErrors.ErrForbidden
	}
	if err := validateStruct(tariffPatchInput{Name: patch.Name, Features: patch.Features}); err != nil {
		return nil, err
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return nil, err
		}
	}
	return u.tariffs.Update(ctx, id, patch)
}

// Delete removes a tariff that no order references. Staff only.
func (u *TariffUseCase) Delete(ctx context.Context, caller model.Subject, id int64) error {
	if !caller.IsStaff {
		return domainErrors.ErrForbidden
	}
	if err := u.tariffs.Delete(ctx, id); err != nil {
		if errors.Is(err, domainErrors.ErrTariffInUse) {
			return domainErrors.ErrTariffInUse
		}
		return err
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return domainErrors.FieldError("price", "ensure this value is greater than or equal to 0")
	case price.GreaterThanOrEqual(maxPrice):
		return domainErrors.FieldError("price", "ensure that there are no more than 10 digits in total")
	case !price.Equal(price.Round(2)):
		return domainErrors.FieldError("price", "ensure that there are no more than 2 decimal places")
	}
	return nil
}
