package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Pronoysaha90/AuraAntique/internal/catalog"
	"github.com/Pronoysaha90/AuraAntique/internal/config"
	"github.com/Pronoysaha90/AuraAntique/internal/event"
	handler "github.com/Pronoysaha90/AuraAntique/internal/handler/http"
	"github.com/Pronoysaha90/AuraAntique/internal/notify"
	"github.com/Pronoysaha90/AuraAntique/internal/service"
	"github.com/Pronoysaha90/AuraAntique/internal/session"
	"github.com/Pronoysaha90/AuraAntique/pkg/health"
	pkgkafka "github.com/Pronoysaha90/AuraAntique/pkg/kafka"
	"github.com/Pronoysaha90/AuraAntique/pkg/middleware"
	"github.com/Pronoysaha90/AuraAntique/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	producer       *pkgkafka.Producer // nil when events are disabled
	sessions       *session.Manager
	httpServer     *http.Server
	stop           context.CancelFunc
	shutdownTracer func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	traceCfg := tracing.DefaultConfig(serviceName)
	traceCfg.Environment = cfg.Environment
	traceCfg.OTLPEndpoint = cfg.OTELEndpoint
	traceCfg.SampleRate = cfg.OTELSampleRate
	traceCfg.Enabled = cfg.OTELEnabled
	shutdownTracer, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	healthHandler := health.NewHandler()

	// Events go to Kafka behind a circuit breaker, or nowhere.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher = event.NoopPublisher{}
	)
	if cfg.EventsEnabled() {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewBreakerPublisher(producer, event.DefaultBreakerConfig(), logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("no kafka brokers configured, storefront events disabled")
	}

	// Build the dependency graph.
	cat := catalog.Default()
	eventProducer := event.NewProducer(publisher, logger)
	storefront := service.NewStorefrontService(cat, eventProducer, logger)

	sessions := session.NewManager(session.Config{
		IdleTimeout: cfg.SessionIdleTimeout,
		MaxSessions: cfg.SessionMax,
		InboxSize:   cfg.ToastInboxSize,
	}, notify.NewLogNotifier(logger), logger)
	sessions.OnCreate(storefront.WatchCart)

	healthHandler.RegisterCritical("catalog", cat.Check)

	// HTTP router. The rate limiter's sweeper lives until Shutdown.
	runCtx, stop := context.WithCancel(context.Background())

	cors := middleware.DefaultCORSConfig()
	cors.Environment = cfg.Environment
	if len(cfg.CORSAllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.CORSAllowedOrigins
	}
	router := handler.NewRouter(runCtx, storefront, sessions, healthHandler, handler.RouterConfig{
		Session: handler.SessionConfig{
			Secure: cfg.SessionCookieSecure,
			MaxAge: int(cfg.SessionIdleTimeout.Seconds()),
		},
		CORS:               cors,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		SessionCreateRPS:   cfg.SessionCreateRPS,
		SessionCreateBurst: cfg.SessionCreateBurst,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		producer:       producer,
		sessions:       sessions,
		httpServer:     httpServer,
		stop:           stop,
		shutdownTracer: shutdownTracer,
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the session sweeper and the HTTP server and blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()
	go a.sessions.Run(sweepCtx)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.stop()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	a.stop()

	// Flush pending events.
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete", slog.Int("sessions_dropped", a.sessions.Len()))
	return nil
}
