package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellspring/internal/api"
	"wellspring/internal/config"
	"wellspring/internal/database"
	"wellspring/internal/domain"
	"wellspring/internal/events"
	"wellspring/internal/export"
	"wellspring/internal/google"
	"wellspring/internal/logging"
	"wellspring/internal/mail"
	"wellspring/internal/metrics"
	"wellspring/internal/repository"
	"wellspring/internal/service"
	"wellspring/internal/storage"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	if err := seedCatalogIfEmpty(cfg, db, &logger); err != nil {
		return err
	}

	store, err := storage.NewFileStore(cfg.Storage.Root, cfg.Server.BaseURL)
	if err != nil {
		logger.Error().Err(err).Str("root", cfg.Storage.Root).Msg("init file store")
		return err
	}

	sessions := initSessionStore(cfg, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	calendar := initCalendar(ctx, cfg, &logger)
	mailer := initMailer(cfg, &logger)

	bus := events.NewEventBus()
	subscribeAuditLog(bus, &logger)

	deps := api.Deps{
		Bookings:    service.NewBookingService(db, bus, &logger),
		Assignments: service.NewAssignmentService(db, calendar, mailer, bus, &logger),
		Statuses:    service.NewStatusService(db, bus, &logger),
		Customers:   service.NewCustomerService(db),
		Experts:     service.NewExpertService(db, store, &logger),
		Catalog:     service.NewCatalogService(db, &logger),
		Gallery:     service.NewGalleryService(store, &logger),
		Auth:        service.NewAuthService(cfg.Auth, sessions, &logger),
		Exporter:    export.NewExporter(cfg.Exports.Path, &logger),
		CatalogPath: cfg.Catalog.Path,
		StaticRoot:  store.Root(),
	}

	httpServer := api.NewServer(cfg.Server, deps, &logger)

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// seedCatalogIfEmpty loads the default service catalog on first start.
func seedCatalogIfEmpty(cfg *config.Config, db *database.DB, logger *zerolog.Logger) error {
	ctx := context.Background()

	count, err := db.CountServices(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	services, err := service.LoadCatalogFile(cfg.Catalog.Path)
	if err != nil {
		logger.Error().Err(err).Str("catalog_path", cfg.Catalog.Path).Msg("load catalog")
		return err
	}
	if err := db.SeedServices(ctx, services); err != nil {
		return err
	}

	logger.Info().Int("count", len(services)).Msg("catalog seeded on first start")
	return nil
}

func initSessionStore(cfg *config.Config, logger *zerolog.Logger) domain.SessionStore {
	if cfg.Redis.Address == "" {
		logger.Info().Msg("no redis configured, using in-memory sessions")
		return repository.NewMemorySessionRepository()
	}

	client := repository.NewRedisClient(cfg.Redis)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, falling back to in-memory sessions")
		return repository.NewMemorySessionRepository()
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return repository.NewRedisSessionRepository(client)
}

func initCalendar(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.CalendarClient {
	if !cfg.Google.Configured() {
		logger.Info().Msg("google calendar not configured, bookings will confirm without meeting links")
		return nil
	}

	calendar, err := google.NewCalendarService(ctx, cfg.Google)
	if err != nil {
		logger.Warn().Err(err).Msg("google calendar init failed, continuing without calendar")
		return nil
	}

	logger.Info().Str("calendar_id", cfg.Google.CalendarID).Msg("google calendar connected")
	return calendar
}

func initMailer(cfg *config.Config, logger *zerolog.Logger) domain.EmailSender {
	if !cfg.SMTP.Configured() {
		logger.Info().Msg("smtp not configured, confirmation emails disabled")
		return nil
	}
	return mail.NewMailer(cfg.SMTP)
}

// subscribeAuditLog writes every booking event to the log as a flat
// audit trail.
func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	auditLogger := logger.With().Str("component", "audit").Logger()
	handler := func(event *events.Event) error {
		auditLogger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("booking event")
		return nil
	}

	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingAssigned, handler)
	bus.Subscribe(events.EventBookingStatusChanged, handler)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func startServer(ctx context.Context, httpServer *api.Server, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("server stopped")
	return nil
}
