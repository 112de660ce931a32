package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// querier is the statement surface shared by the pool and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{db: s.pool}
}

func (s *Storage) Tariffs() repository.TariffRepository {
	return &tariffRepository{db: s.pool}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{db: s.pool}
}

// txFactory hands out repositories bound to a single transaction.
type txFactory struct {
	tx pgx.Tx
}

func (f txFactory) Users() repository.UserRepository     { return &userRepository{db: f.tx} }
func (f txFactory) Tariffs() repository.TariffRepository { return &tariffRepository{db: f.tx} }
func (f txFactory) Orders() repository.OrderRepository   { return &orderRepository{db: f.tx} }

// WithinTx runs fn with repositories bound to one transaction.
func (s *Storage) WithinTx(ctx context.Context, fn func(repository.Factory) error) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return fn(txFactory{tx: tx})
	})
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            phone VARCHAR(15) NOT NULL DEFAULT '',
            company_name VARCHAR(100) NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            is_staff BOOLEAN NOT NULL DEFAULT FALSE,
            is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tariffs (
            id BIGSERIAL PRIMARY KEY,
            name VARCHAR(100) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
            features JSONB NOT NULL DEFAULT '[]'::jsonb,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            tariff_id BIGINT NOT NULL REFERENCES tariffs(id) ON DELETE RESTRICT,
            status TEXT NOT NULL CHECK (status IN ('NEW', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED')),
            project_name VARCHAR(200) NOT NULL,
            project_description TEXT NOT NULL,
            reference_links JSONB NOT NULL DEFAULT '[]'::jsonb,
            requirements TEXT NOT NULL,
            deadline DATE,
            attachments JSONB NOT NULL DEFAULT '[]'::jsonb,
            comments TEXT NOT NULL DEFAULT '',
            total_price NUMERIC(10,2) NOT NULL,
            is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_tariffs_price ON tariffs(price)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// ClearDemoData removes orders, tariffs and non-staff users in one transaction.
func (s *Storage) ClearDemoData(ctx context.Context) error {
	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		statements := []string{
			`DELETE FROM orders`,
			`DELETE FROM tariffs`,
			`DELETE FROM users WHERE is_staff = FALSE`,
		}
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("clear demo data: %w", err)
			}
		}
		s.logger.Info("demo data cleared")
		return nil
	})
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// mapError converts driver errors into domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domainErrors.ErrAlreadyExists
		case pgForeignKeyViolation:
			return domainErrors.ErrTariffInUse
		}
	}
	return err
}
