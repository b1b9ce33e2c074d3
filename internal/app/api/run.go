package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	petcareserver "github.com/Apurer/petcare-api/go"
	adoptionsobs "github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/observability"
	"github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/petgateway"
	adoptionsapp "github.com/Apurer/petcare-api/internal/domains/adoptions/application"
	bookingsobs "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/observability"
	"github.com/Apurer/petcare-api/internal/domains/bookings/adapters/offeringgateway"
	bookingsapp "github.com/Apurer/petcare-api/internal/domains/bookings/application"
	catalogobs "github.com/Apurer/petcare-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/petcare-api/internal/domains/catalog/application"
	"github.com/Apurer/petcare-api/internal/domains/notifications/adapters/dispatch"
	notificationports "github.com/Apurer/petcare-api/internal/domains/notifications/ports"
	offeringsobs "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/observability"
	offeringsapp "github.com/Apurer/petcare-api/internal/domains/offerings/application"
	ordersobs "github.com/Apurer/petcare-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/petcare-api/internal/domains/orders/application"
	paymentsobs "github.com/Apurer/petcare-api/internal/domains/payments/adapters/observability"
	"github.com/Apurer/petcare-api/internal/domains/payments/adapters/ordergateway"
	paymentsapp "github.com/Apurer/petcare-api/internal/domains/payments/application"
	petsobs "github.com/Apurer/petcare-api/internal/domains/pets/adapters/observability"
	petsapp "github.com/Apurer/petcare-api/internal/domains/pets/application"
	usersobs "github.com/Apurer/petcare-api/internal/domains/users/adapters/observability"
	usersapp "github.com/Apurer/petcare-api/internal/domains/users/application"
	usersports "github.com/Apurer/petcare-api/internal/domains/users/ports"
	"github.com/Apurer/petcare-api/internal/platform/events"
	"github.com/Apurer/petcare-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/petcare-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/petcare-api/internal/platform/postgres"
	"github.com/Apurer/petcare-api/internal/platform/tokens"
)

const serviceName = "petcare-api"

// Dependencies are the collaborators shared by the application services.
type Dependencies struct {
	Repositories Repositories
	Publisher    events.Publisher
	Notifier     notificationports.Dispatcher
	Tokens       usersports.TokenIssuer
	Instruments  *platformobservability.Instruments
}

// Application holds the HTTP handlers plus the authenticator used by the router.
type Application struct {
	Handlers      petcareserver.ApiHandleFunctions
	Authenticator petcareserver.Authenticator
}

// Build wires every bounded context, wrapping each service in its observability decorator.
func Build(deps Dependencies) Application {
	repos := deps.Repositories
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.Noop
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notificationports.Noop
	}
	logger := effectiveLogger(deps.Instruments)
	observe := func(scope string) []platformobservability.Option {
		return []platformobservability.Option{
			platformobservability.WithLogger(logger),
			platformobservability.WithTracer(deps.Instruments.Tracer(scope)),
			platformobservability.WithMeter(deps.Instruments.Meter(scope)),
		}
	}

	users := usersobs.New(usersapp.NewService(repos.Users, repos.Sessions, deps.Tokens), observe("internal.users.application")...)
	catalog := catalogobs.New(catalogapp.NewService(repos.Products, repos.Categories), observe("internal.catalog.application")...)
	pets := petsobs.New(petsapp.NewService(repos.Pets, publisher), observe("internal.pets.application")...)
	offerings := offeringsobs.New(offeringsapp.NewService(repos.Offerings), observe("internal.offerings.application")...)
	ordersService := ordersapp.NewService(repos.Orders, repos.UnitOfWork, repos.Idempotency, publisher)
	ordersService.WithLogger(logger)
	orders := ordersobs.New(ordersService, observe("internal.orders.application")...)
	adoptions := adoptionsobs.New(adoptionsapp.NewService(repos.Adoptions, petgateway.New(repos.Pets), notifier, publisher), observe("internal.adoptions.application")...)
	bookings := bookingsobs.New(bookingsapp.NewService(repos.Bookings, offeringgateway.New(repos.Offerings), publisher), observe("internal.bookings.application")...)
	payments := paymentsobs.New(paymentsapp.NewService(repos.Payments, ordergateway.New(repos.Orders, orders), publisher), observe("internal.payments.application")...)

	return Application{
		Handlers: petcareserver.ApiHandleFunctions{
			UserAPI:     petcareserver.NewUserAPI(users),
			CatalogAPI:  petcareserver.NewCatalogAPI(catalog),
			PetAPI:      petcareserver.NewPetAPI(pets),
			OfferingAPI: petcareserver.NewOfferingAPI(offerings),
			OrderAPI:    petcareserver.NewOrderAPI(orders),
			AdoptionAPI: petcareserver.NewAdoptionAPI(adoptions),
			BookingAPI:  petcareserver.NewBookingAPI(bookings),
			PaymentAPI:  petcareserver.NewPaymentAPI(payments),
		},
		Authenticator: users,
	}
}

// Run boots the PetCare HTTP API and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()
	cleanupRedis := useRedisIdempotency(ctx, cfg, &repos, logger)
	defer cleanupRedis()

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	notifier, closeNotifier := buildNotifier(cfg, instruments)
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), inlineSendTimeout)
		defer cancel()
		closeNotifier(drainCtx)
	}()

	issuer, err := tokens.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("configure tokens: %w", err)
	}

	app := Build(Dependencies{
		Repositories: repos,
		Publisher:    publisher,
		Notifier:     notifier,
		Tokens:       issuer,
		Instruments:  instruments,
	})
	router := petcareserver.NewRouter(app.Handlers,
		petcareserver.WithAuthenticator(app.Authenticator),
		petcareserver.WithLogger(logger),
		petcareserver.WithMetrics(petcareserver.NewMetrics()),
		petcareserver.WithMiddleware(otelgin.Middleware(serviceName)),
	)

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go purgeSessions(purgeCtx, repos.Sessions, cfg.Sessions.PurgeInterval, logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("PetCare API listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("PetCare API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down PetCare API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (Repositories, func()) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.Postgres.DSN, logger)
	if db == nil {
		return NewMemoryRepositories(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("schema migration failed, falling back to in-memory repositories", slog.String("error", err.Error()))
		cleanup()
		return NewMemoryRepositories(), func() {}
	}
	return NewPostgresRepositories(db), cleanup
}

// buildNotifier prefers durable delivery through Temporal and falls back to inline sends.
func buildNotifier(cfg Config, instruments *platformobservability.Instruments) (notificationports.Dispatcher, func(context.Context)) {
	logger := effectiveLogger(instruments)
	temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal unavailable, sending notifications inline", slog.String("error", err.Error()))
		return newInlineDispatcher(cfg, logger)
	}
	logger.Info("Temporal notifications enabled", slog.String("namespace", cfg.Temporal.Namespace))
	return dispatch.NewTemporalDispatcher(temporalClient), func(context.Context) { temporalClient.Close() }
}

// ConnectTemporal dials Temporal with tracing and slog-backed logging.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.Temporal.Disabled {
		return nil, errors.New("temporal disabled via temporal.disabled")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
