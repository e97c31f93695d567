package main

import (
	"context"
	"database/sql"
	"fmt"

	bookingsHttp "bookings-insights-service/internal/bookings/adapters/http/fiber"
	bookingsRepoPg "bookings-insights-service/internal/bookings/adapters/postgres"
	bookingsPorts "bookings-insights-service/internal/bookings/core/ports"
	bookingsUsecase "bookings-insights-service/internal/bookings/core/usecase"

	insightsHttp "bookings-insights-service/internal/insights/adapters/http/fiber"
	insightsSourcePg "bookings-insights-service/internal/insights/adapters/postgres"
	"bookings-insights-service/internal/insights/core/ports"
	"bookings-insights-service/internal/insights/core/timeline"
	insightsUsecase "bookings-insights-service/internal/insights/core/usecase"

	"bookings-insights-service/internal/config"
	"bookings-insights-service/internal/migration"
	"bookings-insights-service/internal/observability/logger"
	"bookings-insights-service/internal/observability/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	_ "bookings-insights-service/docs"
)

// @title Bookings Insights Service API
// @version 1.0
// @description Raw booking ingest and a time-based explorer over successful bookings.
// @BasePath /
func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			newLoggerConfig,
			logger.New,
			newRegistry,
			newMetrics,
			newDB,
			newComposer,

			// Adapter-level DB wrappers
			bookingsRepoPg.NewSQLDB,
			insightsSourcePg.NewSQLDB,

			// Repositories
			fx.Annotate(bookingsRepoPg.NewBookingRepository, fx.As(new(bookingsPorts.BookingRepositoryPort))),
			fx.Annotate(insightsSourcePg.NewRecordSource, fx.As(new(ports.RecordSourcePort))),

			// Usecases
			bookingsUsecase.NewStoreBookingUseCase,
			newExploreBookingsUseCase,

			// Handlers
			fx.Annotate(bookingsHttp.NewBookingHandler, fx.From(new(*bookingsUsecase.StoreBookingUseCase))),
			fx.Annotate(insightsHttp.NewInsightsHandler, fx.From(new(*insightsUsecase.ExploreBookingsUseCase))),

			newFiberApp,
		),
		fx.Invoke(migrate),
		fx.Invoke(registerRoutes),
		fx.Invoke(runHTTP),
	)
	app.Run()
}

func newLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	}
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newMetrics returns nil when metrics are disabled; a nil *Metrics records nothing.
func newMetrics(cfg config.Config, reg *prometheus.Registry) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(reg, metrics.Config{ServiceName: cfg.App.Name, Environment: cfg.App.Env})
}

func newDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping postgres: %w", err)
			}
			log.Info("postgres connected",
				zap.Int("max_open_conns", cfg.Postgres.MaxOpenConns),
				zap.Int("max_idle_conns", cfg.Postgres.MaxIdleConns),
			)
			return nil
		},
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

func newComposer(cfg config.Config) (timeline.Composer, error) {
	policy, err := cfg.SuccessPolicy()
	if err != nil {
		return timeline.Composer{}, err
	}
	return timeline.NewComposer(policy), nil
}

func newExploreBookingsUseCase(
	source ports.RecordSourcePort,
	composer timeline.Composer,
	m *metrics.Metrics,
	cfg config.Config,
) *insightsUsecase.ExploreBookingsUseCase {
	var observer ports.PipelineObserver
	if m != nil {
		observer = m
	}
	return insightsUsecase.NewExploreBookingsUseCase(source, composer, observer, insightsUsecase.Config{
		HourlyMaxSpanDays: cfg.Insights.HourlyMaxSpanDays,
		MaxBuckets:        cfg.Insights.MaxBuckets,
		BreakdownLimit:    cfg.Insights.BreakdownLimit,
	})
}

func migrate(lc fx.Lifecycle, cfg config.Config, db *sql.DB, log *zap.Logger) {
	if !cfg.Migrate.OnStart {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := migration.RunMigrations(db); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	})
}

func newFiberApp(m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "bookings-insights",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.FiberMiddleware())
	app.Use(m.FiberMiddleware())

	return app
}

func registerRoutes(
	app *fiber.App,
	cfg config.Config,
	reg *prometheus.Registry,
	bookingsHandler *bookingsHttp.BookingHandler,
	insightsHandler *insightsHttp.InsightsHandler,
) {
	// bookings endpoints
	app.Post("/bookings", bookingsHandler.CreateBooking)
	app.Post("/bookings/bulk", bookingsHandler.BulkCreateBookings)

	// insights endpoints
	app.Get("/insights/bookings", insightsHandler.ExploreBookings)
	app.Get("/insights/bookings/bounds", insightsHandler.GetBounds)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	if cfg.Metrics.Enabled {
		app.Get("/internal/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}
}

func runHTTP(lc fx.Lifecycle, app *fiber.App, cfg config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := app.Listen(cfg.HTTP.Addr); err != nil {
					log.Error("fiber stopped", zap.Error(err))
				}
			}()
			log.Info("server started", zap.String("addr", cfg.HTTP.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	})
}
