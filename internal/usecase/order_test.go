package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	testhelpers "github.com/polkiloo/designstudio/internal/test"
)

var (
	ownerA   = model.Subject{ID: 1}
	ownerB   = model.Subject{ID: 2}
	staff    = model.Subject{ID: 100, IsStaff: true}
	nobody   = model.Subject{}
	basePlan = decimal.RequireFromString("999.99")
)

type orderFixture struct {
	store    *testhelpers.MemoryStore
	recorder *testhelpers.RecorderStub
	uc       *OrderUseCase
	tariff   *model.Tariff
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	tariff, err := store.TariffsRepo.Create(context.Background(), &model.Tariff{
		Name:     "Basic",
		Price:    basePlan,
		Features: []string{"Design"},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed tariff: %v", err)
	}
	recorder := &testhelpers.RecorderStub{}
	return &orderFixture{
		store:    store,
		recorder: recorder,
		uc:       NewOrderUseCase(store.OrdersRepo, store.TariffsRepo, store, recorder),
		tariff:   tariff,
	}
}

func (f *orderFixture) create(t *testing.T, caller model.Subject) *model.Order {
	t.Helper()
	order, err := f.uc.Create(context.Background(), caller, model.NewOrder{
		TariffID:           f.tariff.ID,
		ProjectName:        "Landing",
		ProjectDescription: "Landing page",
		Requirements:       "Responsive",
		ReferenceLinks:     []string{"https://example.com/a"},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func ptr[T any](v T) *T { return &v }

func TestOrderUseCaseCreate(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, ownerA)

	if order.UserID != ownerA.ID {
		t.Fatalf("expected owner %d, got %d", ownerA.ID, order.UserID)
	}
	if order.Status != model.OrderStatusNew {
		t.Fatalf("expected NEW status, got %s", order.Status)
	}
	if !order.TotalPrice.Equal(basePlan) {
		t.Fatalf("expected price snapshot %s, got %s", basePlan, order.TotalPrice)
	}
	if order.Attachments == nil {
		t.Fatalf("expected attachments to default to empty list")
	}
	if order.Tariff == nil || order.Tariff.ID != f.tariff.ID {
		t.Fatalf("expected tariff details to be attached")
	}
	if f.recorder.Created != 1 {
		t.Fatalf("expected created metric, got %d", f.recorder.Created)
	}
}

func TestOrderUseCaseCreateErrors(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	if _, err := f.uc.Create(ctx, nobody, model.NewOrder{}); err != domainErrors.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	_, err := f.uc.Create(ctx, ownerA, model.NewOrder{TariffID: f.tariff.ID, ProjectName: "x"})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = f.uc.Create(ctx, ownerA, model.NewOrder{
		TariffID:           999,
		ProjectName:        "Landing",
		ProjectDescription: "Landing page",
		Requirements:       "Responsive",
	})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing tariff, got %v", err)
	}
	if f.recorder.Created != 0 {
		t.Fatalf("failed creates must not be counted")
	}
}

func TestOrderUseCaseCreateAcceptsInactiveTariff(t *testing.T) {
	f := newOrderFixture(t)
	if _, err := f.store.TariffsRepo.Update(context.Background(), f.tariff.ID, model.TariffPatch{IsActive: ptr(false)}); err != nil {
		t.Fatalf("deactivate tariff: %v", err)
	}
	f.create(t, ownerA)
}

func TestOrderUseCasePriceSnapshotSurvivesTariffChange(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	newPrice := decimal.RequireFromString("1999.99")
	tariffs := NewTariffUseCase(f.store.TariffsRepo)
	if _, err := tariffs.Update(ctx, staff, f.tariff.ID, model.TariffPatch{Price: &newPrice}); err != nil {
		t.Fatalf("update tariff price: %v", err)
	}

	got, err := f.uc.Get(ctx, ownerA, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.TotalPrice.String() != "999.99" {
		t.Fatalf("expected snapshot 999.99, got %s", got.TotalPrice)
	}
	if !got.Tariff.Price.Equal(newPrice) {
		t.Fatalf("expected tariff details to show current price, got %s", got.Tariff.Price)
	}
}

func TestOrderUseCaseGetAccess(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	if _, err := f.uc.Get(ctx, ownerA, order.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := f.uc.Get(ctx, staff, order.ID); err != nil {
		t.Fatalf("staff get: %v", err)
	}
	if got, err := f.uc.Get(ctx, ownerB, order.ID); err != domainErrors.ErrForbidden || got != nil {
		t.Fatalf("expected ErrForbidden for non-owner, got %v %v", got, err)
	}
	if _, err := f.uc.Get(ctx, ownerA, 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCaseListVisibility(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	f.create(t, ownerA)
	f.create(t, ownerA)
	f.create(t, ownerB)

	own, err := f.uc.List(ctx, ownerA, model.OrderListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if own.Total != 2 {
		t.Fatalf("expected 2 own orders, got %d", own.Total)
	}
	for _, o := range own.Items {
		if o.UserID != ownerA.ID {
			t.Fatalf("foreign order leaked into owner list: %+v", o)
		}
	}

	all, err := f.uc.List(ctx, staff, model.OrderListQuery{})
	if err != nil {
		t.Fatalf("staff list: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("expected staff to see 3 orders, got %d", all.Total)
	}

	scopes := f.store.OrdersRepo.Scopes
	if scopes[0].OwnerID != ownerA.ID || scopes[1].OwnerID != 0 {
		t.Fatalf("unexpected scopes %+v", scopes)
	}

	if _, err := f.uc.List(ctx, nobody, model.OrderListQuery{}); err != domainErrors.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	bogus := model.OrderStatus("DONE")
	if _, err := f.uc.List(ctx, ownerA, model.OrderListQuery{Status: &bogus}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestOrderUseCaseUpdateByOwnerDropsStaffFields(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	deadline := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	updated, err := f.uc.Update(ctx, ownerA, order.ID, model.OrderPatch{
		Status:   ptr(model.OrderStatusCompleted),
		Deadline: &deadline,
		Comments: ptr("please hurry"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.OrderStatusNew {
		t.Fatalf("owner must not change status, got %s", updated.Status)
	}
	if updated.Deadline != nil {
		t.Fatalf("owner must not change deadline, got %v", updated.Deadline)
	}
	if updated.Comments != "please hurry" {
		t.Fatalf("expected comments to be applied, got %q", updated.Comments)
	}
	if !updated.TotalPrice.Equal(order.TotalPrice) || updated.UserID != order.UserID || updated.TariffID != order.TariffID {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
}

func TestOrderUseCaseUpdateOwnerOnlyStaffFieldsIsNoop(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, ownerA)

	updated, err := f.uc.Update(context.Background(), ownerA, order.ID, model.OrderPatch{Status: ptr(model.OrderStatusCancelled)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.OrderStatusNew {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	if len(f.store.OrdersRepo.UpdateCalls) != 0 {
		t.Fatalf("empty effective patch must not reach storage")
	}
	if f.recorder.Cancelled != 0 {
		t.Fatalf("stripped cancel must not be counted")
	}
}

func TestOrderUseCaseUpdateByStaff(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	deadline := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err := f.uc.Update(ctx, staff, order.ID, model.OrderPatch{
		Status:   ptr(model.OrderStatusInProgress),
		Deadline: &deadline,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.OrderStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
	}
	if updated.Deadline == nil || !updated.Deadline.Equal(deadline) {
		t.Fatalf("expected deadline %v, got %v", deadline, updated.Deadline)
	}
	if f.store.TxCalls == 0 {
		t.Fatalf("update must run inside a transaction")
	}
}

func TestOrderUseCaseCancelledOrderIsFrozen(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	if _, err := f.uc.Update(ctx, staff, order.ID, model.OrderPatch{Status: ptr(model.OrderStatusCancelled)}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if f.recorder.Cancelled != 1 {
		t.Fatalf("expected cancelled metric, got %d", f.recorder.Cancelled)
	}

	for _, caller := range []model.Subject{staff, ownerA} {
		_, err := f.uc.Update(ctx, caller, order.ID, model.OrderPatch{Comments: ptr("x")})
		var verr *domainErrors.ValidationError
		if !errors.As(err, &verr) || verr.Message != "cannot update a cancelled order" {
			t.Fatalf("expected cancelled order validation error, got %v", err)
		}
	}

	got, err := f.uc.Get(ctx, ownerA, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Comments != "" || got.Status != model.OrderStatusCancelled {
		t.Fatalf("cancelled order changed: %+v", got)
	}
	if len(f.store.OrdersRepo.UpdateCalls) != 1 {
		t.Fatalf("expected only the cancel to reach storage, got %d calls", len(f.store.OrdersRepo.UpdateCalls))
	}
}

func TestOrderUseCaseUpdateValidatesBeforeCancelGuard(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	_, err := f.uc.Update(ctx, ownerA, order.ID, model.OrderPatch{
		ProjectName: ptr(""),
		Comments:    ptr("kept?"),
	})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := f.uc.Get(ctx, ownerA, order.ID)
	if got.Comments != "" {
		t.Fatalf("invalid update must not apply any field, got comments %q", got.Comments)
	}
}

func TestOrderUseCaseUpdateAccess(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	if _, err := f.uc.Update(ctx, ownerB, order.ID, model.OrderPatch{Comments: ptr("x")}); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.uc.Update(ctx, ownerA, 404, model.OrderPatch{Comments: ptr("x")}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCaseUpdateTransactionError(t *testing.T) {
	f := newOrderFixture(t)
	order := f.create(t, ownerA)
	f.store.TxErr = errors.New("begin failed")

	if _, err := f.uc.Update(context.Background(), ownerA, order.ID, model.OrderPatch{Comments: ptr("x")}); err != f.store.TxErr {
		t.Fatalf("expected transaction error, got %v", err)
	}
}

func TestOrderUseCaseSoftDelete(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)
	other := f.create(t, ownerB)

	if err := f.uc.Delete(ctx, ownerB, order.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}
	if err := f.uc.Delete(ctx, ownerA, order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.uc.Get(ctx, ownerA, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("owner must not see deleted order, got %v", err)
	}
	if _, err := f.uc.Get(ctx, staff, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("staff default path must not see deleted order, got %v", err)
	}
	if err := f.uc.Delete(ctx, ownerA, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("re-delete must report ErrNotFound, got %v", err)
	}
	if _, err := f.uc.Update(ctx, ownerA, order.ID, model.OrderPatch{Comments: ptr("x")}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("update of deleted order must report ErrNotFound, got %v", err)
	}

	list, err := f.uc.List(ctx, staff, model.OrderListQuery{})
	if err != nil {
		t.Fatalf("staff list: %v", err)
	}
	if list.Total != 1 || list.Items[0].ID != other.ID {
		t.Fatalf("staff list must exclude deleted order, got %+v", list.Items)
	}

	admin, err := f.uc.AdminGet(ctx, staff, order.ID)
	if err != nil {
		t.Fatalf("admin get: %v", err)
	}
	if !admin.IsDeleted {
		t.Fatalf("expected administrative view to expose deleted flag")
	}
}

func TestOrderUseCaseAdminPaths(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.create(t, ownerA)

	if _, err := f.uc.AdminGet(ctx, ownerA, order.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-staff admin get, got %v", err)
	}
	if _, err := f.uc.Restore(ctx, ownerA, order.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-staff restore, got %v", err)
	}

	if err := f.uc.Delete(ctx, ownerA, order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	restored, err := f.uc.Restore(ctx, staff, order.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.IsDeleted {
		t.Fatalf("expected restored order to be visible")
	}
	if _, err := f.uc.Get(ctx, ownerA, order.ID); err != nil {
		t.Fatalf("owner get after restore: %v", err)
	}
	if _, err := f.uc.AdminGet(ctx, staff, 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
