package test

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Users[stored.Username] = &stored
	s.ByID[stored.ID] = &stored
	out := stored
	return &out, nil
}

// Add stores a prepared user as is, keeping its identifier.
func (s *UserRepositoryStub) Add(user model.User) *model.User {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	stored := user
	s.Users[stored.Username] = &stored
	s.ByID[stored.ID] = &stored
	if stored.ID >= s.Next {
		s.Next = stored.ID + 1
	}
	return &stored
}

// GetByUsername fetches an active user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok && !user.IsDeleted {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches an active user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok && !user.IsDeleted {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile applies non-nil patch fields.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok || user.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	user.Email = lo.FromPtrOr(patch.Email, user.Email)
	user.FirstName = lo.FromPtrOr(patch.FirstName, user.FirstName)
	user.LastName = lo.FromPtrOr(patch.LastName, user.LastName)
	user.Phone = lo.FromPtrOr(patch.Phone, user.Phone)
	user.CompanyName = lo.FromPtrOr(patch.CompanyName, user.CompanyName)
	user.UpdatedAt = time.Now()
	out := *user
	return &out, nil
}

// SoftDelete marks an active user as deleted.
func (s *UserRepositoryStub) SoftDelete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok || user.IsDeleted {
		return domainErrors.ErrNotFound
	}
	user.IsDeleted = true
	return nil
}

// Restore clears the deleted flag.
func (s *UserRepositoryStub) Restore(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	user.IsDeleted = false
	out := *user
	return &out, nil
}

// TariffRepositoryStub keeps tariffs in-memory.
type TariffRepositoryStub struct {
	Items map[int64]*model.Tariff
	Next  int64
	Err   error
	// InUse reports whether orders reference the tariff.
	InUse func(id int64) bool

	ListActiveOnly []bool
}

// NewTariffRepositoryStub constructs an empty tariff stub.
func NewTariffRepositoryStub() *TariffRepositoryStub {
	return &TariffRepositoryStub{Items: make(map[int64]*model.Tariff), Next: 1}
}

// Create stores the tariff and assigns an identifier.
func (s *TariffRepositoryStub) Create(ctx context.Context, tariff *model.Tariff) (*model.Tariff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]*model.Tariff)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := cloneTariff(*tariff)
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Items[stored.ID] = &stored
	out := cloneTariff(stored)
	return &out, nil
}

// GetByID returns the tariff regardless of its active flag.
func (s *TariffRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Tariff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if t, ok := s.Items[id]; ok {
		out := cloneTariff(*t)
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByName returns the tariff with the exact name.
func (s *TariffRepositoryStub) GetByName(ctx context.Context, name string) (*model.Tariff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, t := range s.Items {
		if t.Name == name {
			out := cloneTariff(*t)
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List applies active, price and search filters ordered by price.
func (s *TariffRepositoryStub) List(ctx context.Context, activeOnly bool, query model.TariffListQuery) (*model.PageResult[model.Tariff], error) {
	s.ListActiveOnly = append(s.ListActiveOnly, activeOnly)
	if s.Err != nil {
		return nil, s.Err
	}
	items := lo.FilterMap(lo.Values(s.Items), func(t *model.Tariff, _ int) (model.Tariff, bool) {
		switch {
		case activeOnly && !t.IsActive:
			return model.Tariff{}, false
		case query.IsActive != nil && t.IsActive != *query.IsActive:
			return model.Tariff{}, false
		case query.MinPrice != nil && t.Price.LessThan(*query.MinPrice):
			return model.Tariff{}, false
		case query.MaxPrice != nil && t.Price.GreaterThan(*query.MaxPrice):
			return model.Tariff{}, false
		case query.Search != "" && !containsFold(t.Name+" "+t.Description, query.Search):
			return model.Tariff{}, false
		}
		return cloneTariff(*t), true
	})
	slices.SortFunc(items, func(a, b model.Tariff) int { return a.Price.Cmp(b.Price) })
	return paginate(items, query.Page), nil
}

// Update applies non-nil patch fields.
func (s *TariffRepositoryStub) Update(ctx context.Context, id int64, patch model.TariffPatch) (*model.Tariff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	t, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	t.Name = lo.FromPtrOr(patch.Name, t.Name)
	t.Description = lo.FromPtrOr(patch.Description, t.Description)
	t.Price = lo.FromPtrOr(patch.Price, t.Price)
	t.Features = lo.FromPtrOr(patch.Features, t.Features)
	t.IsActive = lo.FromPtrOr(patch.IsActive, t.IsActive)
	t.UpdatedAt = time.Now()
	out := cloneTariff(*t)
	return &out, nil
}

// Delete removes an unreferenced tariff.
func (s *TariffRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	if s.InUse != nil && s.InUse(id) {
		return domainErrors.ErrTariffInUse
	}
	delete(s.Items, id)
	return nil
}

// OrderRepositoryStub keeps orders in-memory and honours the soft delete flag.
type OrderRepositoryStub struct {
	Items   map[int64]*model.Order
	Next    int64
	Err     error
	Tariffs *TariffRepositoryStub

	ListFn   func(context.Context, model.OrderScope, model.OrderListQuery) (*model.PageResult[model.Order], error)
	UpdateFn func(context.Context, int64, model.OrderPatch) (*model.Order, error)

	Scopes      []model.OrderScope
	UpdateCalls []model.OrderPatch
}

// NewOrderRepositoryStub constructs an empty order stub joined to tariffs.
func NewOrderRepositoryStub(tariffs *TariffRepositoryStub) *OrderRepositoryStub {
	return &OrderRepositoryStub{Items: make(map[int64]*model.Order), Next: 1, Tariffs: tariffs}
}

// Create stores the order and assigns an identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := cloneOrder(*order)
	stored.ID = s.Next
	stored.Tariff = nil
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().Add(time.Duration(stored.ID) * time.Millisecond)
	}
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Items[stored.ID] = &stored
	return s.view(&stored), nil
}

// Get returns a non-deleted order.
func (s *OrderRepositoryStub) Get(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Items[id]
	if !ok || o.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	return s.view(o), nil
}

// GetAny returns the order including soft deleted ones.
func (s *OrderRepositoryStub) GetAny(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return s.view(o), nil
}

// List returns non-deleted orders within scope, newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, scope model.OrderScope, query model.OrderListQuery) (*model.PageResult[model.Order], error) {
	s.Scopes = append(s.Scopes, scope)
	if s.ListFn != nil {
		return s.ListFn(ctx, scope, query)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	items := lo.FilterMap(lo.Values(s.Items), func(o *model.Order, _ int) (model.Order, bool) {
		switch {
		case o.IsDeleted:
			return model.Order{}, false
		case scope.OwnerID != 0 && o.UserID != scope.OwnerID:
			return model.Order{}, false
		case query.Status != nil && o.Status != *query.Status:
			return model.Order{}, false
		case query.Search != "" && !containsFold(o.ProjectName+" "+o.ProjectDescription, query.Search):
			return model.Order{}, false
		}
		return *s.view(o), true
	})
	slices.SortFunc(items, func(a, b model.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return paginate(items, query.Page), nil
}

// Update applies non-nil patch fields to a non-deleted order.
func (s *OrderRepositoryStub) Update(ctx context.Context, id int64, patch model.OrderPatch) (*model.Order, error) {
	s.UpdateCalls = append(s.UpdateCalls, patch)
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Items[id]
	if !ok || o.IsDeleted {
		return nil, domainErrors.ErrNotFound
	}
	o.Status = lo.FromPtrOr(patch.Status, o.Status)
	o.ProjectName = lo.FromPtrOr(patch.ProjectName, o.ProjectName)
	o.ProjectDescription = lo.FromPtrOr(patch.ProjectDescription, o.ProjectDescription)
	o.ReferenceLinks = slices.Clone(lo.FromPtrOr(patch.ReferenceLinks, o.ReferenceLinks))
	o.Requirements = lo.FromPtrOr(patch.Requirements, o.Requirements)
	if patch.Deadline != nil {
		d := *patch.Deadline
		o.Deadline = &d
	}
	o.Attachments = slices.Clone(lo.FromPtrOr(patch.Attachments, o.Attachments))
	o.Comments = lo.FromPtrOr(patch.Comments, o.Comments)
	o.UpdatedAt = time.Now()
	return s.view(o), nil
}

// SoftDelete flags a non-deleted order as deleted.
func (s *OrderRepositoryStub) SoftDelete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	o, ok := s.Items[id]
	if !ok || o.IsDeleted {
		return domainErrors.ErrNotFound
	}
	o.IsDeleted = true
	return nil
}

// Restore clears the deleted flag.
func (s *OrderRepositoryStub) Restore(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o.IsDeleted = false
	return s.view(o), nil
}

// References reports whether any order, deleted or not, points at the tariff.
func (s *OrderRepositoryStub) References(tariffID int64) bool {
	return lo.SomeBy(lo.Values(s.Items), func(o *model.Order) bool { return o.TariffID == tariffID })
}

func (s *OrderRepositoryStub) view(o *model.Order) *model.Order {
	out := cloneOrder(*o)
	if s.Tariffs != nil {
		if t, ok := s.Tariffs.Items[o.TariffID]; ok {
			tariff := cloneTariff(*t)
			out.Tariff = &tariff
		}
	}
	return &out
}

// MemoryStore bundles the in-memory repositories behind Factory and Transactor.
type MemoryStore struct {
	UsersRepo   *UserRepositoryStub
	TariffsRepo *TariffRepositoryStub
	OrdersRepo  *OrderRepositoryStub

	TxCalls int
	TxErr   error
}

// NewMemoryStore wires empty repositories together.
func NewMemoryStore() *MemoryStore {
	tariffs := NewTariffRepositoryStub()
	orders := NewOrderRepositoryStub(tariffs)
	tariffs.InUse = orders.References
	return &MemoryStore{
		UsersRepo:   NewUserRepositoryStub(),
		TariffsRepo: tariffs,
		OrdersRepo:  orders,
	}
}

func (m *MemoryStore) Users() repository.UserRepository     { return m.UsersRepo }
func (m *MemoryStore) Tariffs() repository.TariffRepository { return m.TariffsRepo }
func (m *MemoryStore) Orders() repository.OrderRepository   { return m.OrdersRepo }

// WithinTx runs fn against the same repositories.
func (m *MemoryStore) WithinTx(ctx context.Context, fn func(repository.Factory) error) error {
	m.TxCalls++
	if m.TxErr != nil {
		return m.TxErr
	}
	return fn(m)
}

func paginate[T any](items []T, page model.Page) *model.PageResult[T] {
	total := len(items)
	if page.Size > 0 {
		start := min(page.Offset(), total)
		end := min(start+page.Size, total)
		items = items[start:end]
	}
	return &model.PageResult[T]{Items: items, Total: total, Page: page}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func cloneTariff(t model.Tariff) model.Tariff {
	t.Features = slices.Clone(t.Features)
	return t
}

func cloneOrder(o model.Order) model.Order {
	o.ReferenceLinks = slices.Clone(o.ReferenceLinks)
	o.Attachments = slices.Clone(o.Attachments)
	if o.Deadline != nil {
		d := *o.Deadline
		o.Deadline = &d
	}
	return o
}

var (
	_ repository.Factory    = (*MemoryStore)(nil)
	_ repository.Transactor = (*MemoryStore)(nil)
)
