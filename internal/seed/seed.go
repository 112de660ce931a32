package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/designstudio/internal/domain/errors"
	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/domain/repository"
	pkgAuth "github.com/polkiloo/designstudio/internal/pkg/auth"
)

// DemoPassword is shared by every demo customer account.
const DemoPassword = "testpass123"

// Clearer removes previously seeded demo data.
type Clearer interface {
	ClearDemoData(ctx context.Context) error
}

// Options controls a seeding run.
type Options struct {
	Clear         bool
	AdminUsername string
	AdminPassword string
}

// Summary counts the rows created by a run.
type Summary struct {
	Tariffs int
	Users   int
	Orders  int
}

// Seeder fills an empty database with demo tariffs, customers and orders.
type Seeder struct {
	repos   repository.Factory
	clearer Clearer
	hasher  pkgAuth.PasswordHasher
	logger  *slog.Logger
	now     func() time.Time
}

// New constructs Seeder.
func New(repos repository.Factory, clearer Clearer, hasher pkgAuth.PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{repos: repos, clearer: clearer, hasher: hasher, logger: logger, now: time.Now}
}

type demoOrder struct {
	name         string
	description  string
	requirements string
	status       model.OrderStatus
	daysAgo      int
}

var demoTariffs = []model.Tariff{
	{
		Name:        "Базовый",
		Description: "Идеально подходит для небольших проектов и стартапов. Включает все необходимое для создания современного веб-сайта.",
		Price:       decimal.RequireFromString("49999.00"),
		Features: []string{
			"Адаптивный дизайн под все устройства",
			"SEO оптимизация",
			"Базовая поддержка 1 месяц",
			"До 5 страниц сайта",
			"Интеграция с социальными сетями",
		},
		IsActive: true,
	},
	{
		Name:        "Премиум",
		Description: "Расширенный пакет для серьезных проектов. Включает дополнительные функции и расширенную поддержку.",
		Price:       decimal.RequireFromString("69999.00"),
		Features: []string{
			"Все возможности базового тарифа",
			"До 15 страниц сайта",
			"Анимации и интерактивные элементы",
			"Интеграция с CRM системами",
			"Расширенная поддержка 3 месяца",
			"Аналитика и отчеты",
			"Оптимизация скорости загрузки",
		},
		IsActive: true,
	},
	{
		Name:        "Корпоративный",
		Description: "Максимальный пакет для крупных компаний. Полный спектр услуг с индивидуальным подходом.",
		Price:       decimal.RequireFromString("120000.00"),
		Features: []string{
			"Все возможности премиум тарифа",
			"Неограниченное количество страниц",
			"Индивидуальный дизайн",
			"Интеграция с корпоративными системами",
			"Поддержка 6 месяцев",
			"Обучение команды",
			"Приоритетная техподдержка",
			"Резервное копирование",
		},
		IsActive: true,
	},
}

var demoUsers = []model.User{
	{
		Username:    "ivan.petrov@example.com",
		Email:       "ivan.petrov@example.com",
		FirstName:   "Иван",
		LastName:    "Петров",
		Phone:       "+74951234567",
		CompanyName: `ТОО "Альфа"`,
	},
	{
		Username:    "maria.sidorova@example.com",
		Email:       "maria.sidorova@example.com",
		FirstName:   "Мария",
		LastName:    "Сидорова",
		Phone:       "+74952345678",
		CompanyName: "ИП Сидорова М.А.",
	},
	{
		Username:    "alex.kozlov@example.com",
		Email:       "alex.kozlov@example.com",
		FirstName:   "Александр",
		LastName:    "Козлов",
		Phone:       "+74953456789",
		CompanyName: `ООО "Бета Технологии"`,
	},
}

var demoOrders = []demoOrder{
	{"Корпоративный сайт Альфа", "Корпоративный сайт для торговой компании с каталогом товаров", "Современный дизайн, интеграция с 1С, онлайн каталог", model.OrderStatusCompleted, 45},
	{"Интернет-магазин одежды", "Интернет-магазин женской одежды с системой заказов", "Адаптивный дизайн, корзина, оплата онлайн", model.OrderStatusInProgress, 15},
	{"Лендинг IT-услуг", "Одностраничный сайт для IT-компании", "Яркий дизайн, форма обратной связи, SEO оптимизация", model.OrderStatusNew, 3},
	{"Портфолио дизайнера", "Личный сайт-портфолио для веб-дизайнера", "Минималистичный дизайн, галерея работ, блог", model.OrderStatusCompleted, 30},
	{"Сайт ресторана", "Сайт для ресторана с меню и бронированием столиков", "Аппетитный дизайн, онлайн меню, система бронирования", model.OrderStatusInProgress, 8},
}

// Run seeds the catalog, demo customers, the optional staff account and demo orders.
// Existing tariffs and users are reused by name.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var summary Summary

	if opts.Clear {
		if err := s.clearer.ClearDemoData(ctx); err != nil {
			return summary, err
		}
	}

	tariffs, created, err := s.ensureTariffs(ctx)
	if err != nil {
		return summary, err
	}
	summary.Tariffs = created

	customers, created, err := s.ensureCustomers(ctx)
	if err != nil {
		return summary, err
	}
	summary.Users = created

	if opts.AdminUsername != "" {
		ok, err := s.ensureStaff(ctx, opts.AdminUsername, opts.AdminPassword)
		if err != nil {
			return summary, err
		}
		if ok {
			summary.Users++
		}
	}

	summary.Orders, err = s.createOrders(ctx, customers, tariffs)
	if err != nil {
		return summary, err
	}

	s.logger.Info("demo data seeded",
		slog.Int("tariffs", summary.Tariffs),
		slog.Int("users", summary.Users),
		slog.Int("orders", summary.Orders),
	)
	return summary, nil
}

func (s *Seeder) ensureTariffs(ctx context.Context) ([]*model.Tariff, int, error) {
	out := make([]*model.Tariff, 0, len(demoTariffs))
	created := 0
	for _, tpl := range demoTariffs {
		existing, err := s.repos.Tariffs().GetByName(ctx, tpl.Name)
		switch {
		case err == nil:
			s.logger.Debug("tariff already exists", slog.String("name", tpl.Name))
			out = append(out, existing)
			continue
		case !errors.Is(err, domainErrors.ErrNotFound):
			return nil, created, fmt.Errorf("lookup tariff %q: %w", tpl.Name, err)
		}

		tariff := tpl
		tariff.Features = append([]string(nil), tpl.Features...)
		stored, err := s.repos.Tariffs().Create(ctx, &tariff)
		if err != nil {
			return nil, created, fmt.Errorf("create tariff %q: %w", tpl.Name, err)
		}
		s.logger.Debug("tariff created", slog.String("name", stored.Name))
		out = append(out, stored)
		created++
	}
	return out, created, nil
}

func (s *Seeder) ensureCustomers(ctx context.Context) ([]*model.User, int, error) {
	out := make([]*model.User, 0, len(demoUsers))
	created := 0
	for _, tpl := range demoUsers {
		usr, ok, err := s.ensureUser(ctx, tpl, DemoPassword)
		if err != nil {
			return nil, created, err
		}
		if usr != nil {
			out = append(out, usr)
		}
		if ok {
			created++
		}
	}
	return out, created, nil
}

func (s *Seeder) ensureStaff(ctx context.Context, username, password string) (bool, error) {
	if password == "" {
		return false, domainErrors.FieldError("admin_password", "this field is required")
	}
	_, ok, err := s.ensureUser(ctx, model.User{Username: username, IsStaff: true}, password)
	return ok, err
}

// ensureUser returns the active account with the template's username, creating it when missing.
// A soft-deleted account with the same username is skipped and yields a nil user.
func (s *Seeder) ensureUser(ctx context.Context, tpl model.User, password string) (*model.User, bool, error) {
	existing, err := s.repos.Users().GetByUsername(ctx, tpl.Username)
	switch {
	case err == nil:
		s.logger.Debug("user already exists", slog.String("username", tpl.Username))
		return existing, false, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, false, fmt.Errorf("lookup user %q: %w", tpl.Username, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	usr := tpl
	usr.PasswordHash = hash
	stored, err := s.repos.Users().Create(ctx, &usr)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			s.logger.Warn("username taken by a deleted account", slog.String("username", tpl.Username))
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("create user %q: %w", tpl.Username, err)
	}
	s.logger.Debug("user created", slog.String("username", stored.Username), slog.Bool("staff", stored.IsStaff))
	return stored, true, nil
}

func (s *Seeder) createOrders(ctx context.Context, customers []*model.User, tariffs []*model.Tariff) (int, error) {
	if len(customers) == 0 || len(tariffs) == 0 {
		s.logger.Warn("no tariffs or customers, skipping demo orders")
		return 0, nil
	}

	now := s.now()
	for i, tpl := range demoOrders {
		owner := customers[i%len(customers)]
		tariff := tariffs[i%len(tariffs)]
		_, err := s.repos.Orders().Create(ctx, &model.Order{
			UserID:             owner.ID,
			TariffID:           tariff.ID,
			Status:             tpl.status,
			ProjectName:        tpl.name,
			ProjectDescription: tpl.description,
			Requirements:       tpl.requirements,
			ReferenceLinks:     []string{},
			Attachments:        []string{},
			TotalPrice:         tariff.Price,
			CreatedAt:          now.AddDate(0, 0, -tpl.daysAgo),
		})
		if err != nil {
			return i, fmt.Errorf("create order %q: %w", tpl.name, err)
		}
	}
	return len(demoOrders), nil
}
