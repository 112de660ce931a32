package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Tariffs() TariffRepository
	Orders() OrderRepository
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Factory) error) error
}
