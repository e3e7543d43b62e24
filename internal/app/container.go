package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"github.com/romain-38530/rdv-planning/internal/cache"
	"github.com/romain-38530/rdv-planning/internal/config"
	"github.com/romain-38530/rdv-planning/internal/http/handlers"
	"github.com/romain-38530/rdv-planning/internal/http/router"
	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/repository"
	"github.com/romain-38530/rdv-planning/internal/service/appointment"
	"github.com/romain-38530/rdv-planning/internal/service/booking"
	"github.com/romain-38530/rdv-planning/internal/service/orders"
	"github.com/romain-38530/rdv-planning/internal/service/reservation"
	"github.com/romain-38530/rdv-planning/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewAppointmentRepo,
		repository.NewSlotRepo,
		repository.NewBookingRepo,
		func(cfg *config.Config) time.Duration { return cfg.Planning.OperationTimeout },
		func(slots *repository.SlotRepo, bookings *repository.BookingRepo, logger logx.Logger) *reservation.Finalizer {
			return reservation.NewFinalizer(slots, bookings, logger,
				reservation.WithConflictCounter(newSlotClaimConflictsCounter()))
		},
		newPendingCache,
		func(
			store *repository.AppointmentRepo,
			finalizer *reservation.Finalizer,
			timeout time.Duration,
			logger logx.Logger,
			pending appointment.Cache,
		) *appointment.Service {
			opts := []appointment.Option{
				appointment.WithRoutingCounter(newRoutingDecisionsCounter()),
			}
			if pending != nil {
				opts = append(opts, appointment.WithCache(pending))
			}
			return appointment.NewService(store, finalizer, timeout, logger, opts...)
		},
		func(
			store *repository.BookingRepo,
			slots *repository.SlotRepo,
			timeout time.Duration,
			logger logx.Logger,
		) *booking.Service {
			return booking.NewService(store, slots, timeout, logger)
		},
		func(svc *appointment.Service, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(svc, logger)
		},
	)
}

// newPendingCache returns nil when Redis is not configured; the
// appointment service treats a nil cache as "no cache".
func newPendingCache(cfg *config.Config) appointment.Cache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PendingTTL)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(p *orders.Processor) kafka.HandleFunc {
			return p.Handle
		},
		func(cfg *config.Config, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewAppointmentUsecase,
		handlers.NewAppointmentHandler,
		handlers.NewBookingUsecase,
		handlers.NewBookingHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouterDeps,
		router.New,
		serverProvider,
	)
}
