package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	testhelpers "github.com/polkiloo/designstudio/internal/test"
)

func newTariffInput(name, price string) model.NewTariff {
	return model.NewTariff{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Features: []string{"Design", "Support"},
		IsActive: true,
	}
}

func TestTariffUseCaseCreateRequiresStaff(t *testing.T) {
	uc := NewTariffUseCase(testhelpers.NewTariffRepositoryStub())
	if _, err := uc.Create(context.Background(), ownerA, newTariffInput("Basic", "10.00")); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTariffUseCaseCreate(t *testing.T) {
	repo := testhelpers.NewTariffRepositoryStub()
	uc := NewTariffUseCase(repo)

	in := newTariffInput("  Premium ", "69999.00")
	in.Features = nil
	tariff, err := uc.Create(context.Background(), staff, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tariff.Name != "Premium" {
		t.Fatalf("expected trimmed name, got %q", tariff.Name)
	}
	if tariff.Features == nil {
		t.Fatalf("expected empty features list")
	}
}

func TestTariffUseCaseCreateValidation(t *testing.T) {
	uc := NewTariffUseCase(testhelpers.NewTariffRepositoryStub())
	cases := []struct {
		name  string
		in    model.NewTariff
		field string
	}{
		{"empty name", newTariffInput("", "10.00"), "name"},
		{"negative price", newTariffInput("A", "-1.00"), "price"},
		{"too many digits", newTariffInput("A", "100000000.00"), "price"},
		{"too many decimals", newTariffInput("A", "10.001"), "price"},
		{"blank feature", model.NewTariff{Name: "A", Price: decimal.NewFromInt(1), Features: []string{" "}}, "features"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), staff, tc.in)
			var verr *domainErrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Fatalf("expected %s field error, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestTariffUseCaseCatalogHidesInactive(t *testing.T) {
	repo := testhelpers.NewTariffRepositoryStub()
	uc := NewTariffUseCase(repo)
	ctx := context.Background()

	active, _ := uc.Create(ctx, staff, newTariffInput("Basic", "49999.00"))
	hiddenIn := newTariffInput("Legacy", "100.00")
	hiddenIn.IsActive = false
	hidden, _ := uc.Create(ctx, staff, hiddenIn)

	if _, err := uc.Get(ctx, active.ID); err != nil {
		t.Fatalf("get active: %v", err)
	}
	if _, err := uc.Get(ctx, hidden.ID); err != domainErrors.ErrNotFound {
		t.Fatalf("expected inactive tariff to be hidden, got %v", err)
	}

	page, err := uc.List(ctx, model.TariffListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != active.ID {
		t.Fatalf("unexpected catalog %+v", page.Items)
	}
	if len(repo.ListActiveOnly) != 1 || !repo.ListActiveOnly[0] {
		t.Fatalf("catalog must request active tariffs only")
	}
}

func TestTariffUseCaseListRejectsInvertedRange(t *testing.T) {
	uc := NewTariffUseCase(testhelpers.NewTariffRepositoryStub())
	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(5)
	if _, err := uc.List(context.Background(), model.TariffListQuery{MinPrice: &lo, MaxPrice: &hi}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTariffUseCaseUpdate(t *testing.T) {
	uc := NewTariffUseCase(testhelpers.NewTariffRepositoryStub())
	ctx := context.Background()
	tariff, _ := uc.Create(ctx, staff, newTariffInput("Basic", "10.00"))

	if _, err := uc.Update(ctx, ownerA, tariff.ID, model.TariffPatch{}); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	bad := decimal.RequireFromString("-5")
	if _, err := uc.Update(ctx, staff, tariff.ID, model.TariffPatch{Price: &bad}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	blank := ""
	if _, err := uc.Update(ctx, staff, tariff.ID, model.TariffPatch{Name: &blank}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	price := decimal.RequireFromString("20.50")
	updated, err := uc.Update(ctx, staff, tariff.ID, model.TariffPatch{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Price.Equal(price) {
		t.Fatalf("unexpected price %s", updated.Price)
	}
}

func TestTariffUseCaseDelete(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	uc := NewTariffUseCase(f.store.TariffsRepo)
	f.create(t, ownerA)

	if err := uc.Delete(ctx, ownerA, f.tariff.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.Delete(ctx, staff, f.tariff.ID); err != domainErrors.ErrTariffInUse {
		t.Fatalf("expected ErrTariffInUse, got %v", err)
	}

	spare, _ := uc.Create(ctx, staff, newTariffInput("Spare", "1.00"))
	if err := uc.Delete(ctx, staff, spare.ID); err != nil {
		t.Fatalf("delete unreferenced tariff: %v", err)
	}
	if err := uc.Delete(ctx, staff, spare.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
