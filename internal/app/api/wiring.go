package api

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	adoptionsmemory "github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/memory"
	adoptionspostgres "github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionsports "github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
	bookingsmemory "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/memory"
	bookingspostgres "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/persistence/postgres"
	bookingsports "github.com/Apurer/petcare-api/internal/domains/bookings/ports"
	catalogmemory "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	"github.com/Apurer/petcare-api/internal/domains/notifications/adapters/dispatch"
	"github.com/Apurer/petcare-api/internal/domains/notifications/adapters/mail"
	notificationports "github.com/Apurer/petcare-api/internal/domains/notifications/ports"
	offeringsmemory "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/memory"
	offeringspostgres "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/persistence/postgres"
	offeringsports "github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	ordersredis "github.com/Apurer/petcare-api/internal/domains/orders/adapters/cache/redis"
	ordersmemory "github.com/Apurer/petcare-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/petcare-api/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/petcare-api/internal/domains/orders/ports"
	paymentsmemory "github.com/Apurer/petcare-api/internal/domains/payments/adapters/memory"
	paymentspostgres "github.com/Apurer/petcare-api/internal/domains/payments/adapters/persistence/postgres"
	paymentsports "github.com/Apurer/petcare-api/internal/domains/payments/ports"
	petsmemory "github.com/Apurer/petcare-api/internal/domains/pets/adapters/memory"
	petspostgres "github.com/Apurer/petcare-api/internal/domains/pets/adapters/persistence/postgres"
	petsports "github.com/Apurer/petcare-api/internal/domains/pets/ports"
	usersmemory "github.com/Apurer/petcare-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/Apurer/petcare-api/internal/domains/users/adapters/persistence/postgres"
	usersports "github.com/Apurer/petcare-api/internal/domains/users/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/platform/events/kafka"
	"github.com/Apurer/petcare-api/internal/platform/events/rabbitmq"
	platformredis "github.com/Apurer/petcare-api/internal/platform/redis"
)

const inlineSendTimeout = 30 * time.Second

// Repositories bundles the persistence adapters of every bounded context.
type Repositories struct {
	Products    catalogports.ProductRepository
	Categories  catalogports.CategoryRepository
	Pets        petsports.Repository
	Offerings   offeringsports.Repository
	Orders      ordersports.Repository
	UnitOfWork  ordersports.UnitOfWork
	Idempotency ordersports.IdempotencyStore
	Users       usersports.Repository
	Sessions    usersports.SessionStore
	Adoptions   adoptionsports.Repository
	Bookings    bookingsports.Repository
	Payments    paymentsports.Repository
}

// NewMemoryRepositories returns process-local adapters sharing one inventory.
func NewMemoryRepositories() Repositories {
	products := catalogmemory.NewProductRepository()
	pets := petsmemory.NewRepository()
	offerings := offeringsmemory.NewRepository()
	orders := ordersmemory.NewRepository()
	return Repositories{
		Products:    products,
		Categories:  catalogmemory.NewCategoryRepository(),
		Pets:        pets,
		Offerings:   offerings,
		Orders:      orders,
		UnitOfWork:  ordersmemory.NewUnitOfWork(orders, products, pets, offerings),
		Idempotency: ordersmemory.NewIdempotencyStore(),
		Users:       usersmemory.NewRepository(),
		Sessions:    usersmemory.NewSessionStore(),
		Adoptions:   adoptionsmemory.NewRepository(),
		Bookings:    bookingsmemory.NewRepository(),
		Payments:    paymentsmemory.NewRepository(),
	}
}

// NewPostgresRepositories returns GORM adapters over db.
func NewPostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Products:    catalogpostgres.NewProductRepository(db),
		Categories:  catalogpostgres.NewCategoryRepository(db),
		Pets:        petspostgres.NewRepository(db),
		Offerings:   offeringspostgres.NewRepository(db),
		Orders:      orderspostgres.NewRepository(db),
		UnitOfWork:  orderspostgres.NewUnitOfWork(db),
		Idempotency: orderspostgres.NewIdempotencyStore(db),
		Users:       userspostgres.NewRepository(db),
		Sessions:    userspostgres.NewSessionStore(db),
		Adoptions:   adoptionspostgres.NewRepository(db),
		Bookings:    bookingspostgres.NewRepository(db),
		Payments:    paymentspostgres.NewRepository(db),
	}
}

// useRedisIdempotency swaps the idempotency store for Redis when it is configured and reachable.
func useRedisIdempotency(ctx context.Context, cfg Config, repos *Repositories, logger *slog.Logger) func() {
	if cfg.Redis.Addr == "" {
		return func() {}
	}
	rdb, err := platformredis.Connect(ctx, platformredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, keeping the default idempotency store", slog.String("error", err.Error()))
		return func() {}
	}
	repos.Idempotency = ordersredis.NewIdempotencyStore(rdb, cfg.Idempotency.TTL)
	logger.Info("idempotency keys stored in redis", slog.String("addr", cfg.Redis.Addr))
	return func() { _ = rdb.Close() }
}

// buildPublisher dials the configured broker, or returns events.Noop.
func buildPublisher(cfg Config, logger *slog.Logger) (events.Publisher, func()) {
	switch cfg.Events.Broker {
	case BrokerRabbitMQ:
		p, err := rabbitmq.Dial(cfg.Events.RabbitMQ.URL, cfg.Events.RabbitMQ.Exchange)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events will be dropped", slog.String("error", err.Error()))
			return events.Logged(events.Noop, logger), func() {}
		}
		logger.Info("publishing events to rabbitmq")
		return events.Logged(p, logger), func() { _ = p.Close() }
	case BrokerKafka:
		p, err := kafka.Dial(cfg.Events.Kafka.Brokers, cfg.Events.Kafka.Topic)
		if err != nil {
			logger.Warn("kafka unavailable, events will be dropped", slog.String("error", err.Error()))
			return events.Logged(events.Noop, logger), func() {}
		}
		logger.Info("publishing events to kafka", slog.String("topic", cfg.Events.Kafka.Topic))
		return events.Logged(p, logger), func() { _ = p.Close() }
	default:
		return events.Logged(events.Noop, logger), func() {}
	}
}

// NewMailer sends through SMTP when a host is configured and logs messages otherwise.
func NewMailer(cfg Config, logger *slog.Logger) notificationports.Mailer {
	if cfg.SMTP.Host == "" {
		return mail.NewLogMailer(logger)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
}

// newInlineDispatcher is used when Temporal is disabled or unreachable.
func newInlineDispatcher(cfg Config, logger *slog.Logger) (notificationports.Dispatcher, func(context.Context)) {
	d := dispatch.NewInlineDispatcher(NewMailer(cfg, logger), logger, inlineSendTimeout)
	return d, func(ctx context.Context) {
		if err := d.Close(ctx); err != nil {
			logger.Warn("inline dispatcher did not drain", slog.String("error", err.Error()))
		}
	}
}

// purgeSessions deletes expired login sessions every interval until ctx ends.
func purgeSessions(ctx context.Context, sessions usersports.SessionStore, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			purged, err := sessions.PurgeExpired(ctx, now.UTC())
			if err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			if purged > 0 {
				logger.Info("expired sessions purged", slog.Int64("count", purged))
			}
		}
	}
}
