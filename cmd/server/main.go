package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"

	"assetdesk/internal/auth"
	authmetrics "assetdesk/internal/auth/metrics"
	"assetdesk/internal/checkout"
	checkoutmetrics "assetdesk/internal/checkout/metrics"
	"assetdesk/internal/checkout/processor"
	"assetdesk/internal/events"
	"assetdesk/internal/gateway"
	gatewaymetrics "assetdesk/internal/gateway/metrics"
	"assetdesk/internal/identity/kratos"
	jwttoken "assetdesk/internal/jwt_token"
	"assetdesk/internal/platform/config"
	"assetdesk/internal/platform/httpserver"
	"assetdesk/internal/platform/logger"
	"assetdesk/internal/platform/metrics"
	"assetdesk/internal/platform/postgres"
	"assetdesk/internal/platform/redis"
	"assetdesk/internal/portal"
	"assetdesk/internal/ratelimit"
	ratelimitmetrics "assetdesk/internal/ratelimit/metrics"
	"assetdesk/internal/session"
	httptransport "assetdesk/internal/transport/http"
	"assetdesk/pkg/platform/audit"
	"assetdesk/pkg/platform/audit/publisher"
	kafkastore "assetdesk/pkg/platform/audit/store/kafka"
	logstore "assetdesk/pkg/platform/audit/store/log"
	pgaudit "assetdesk/pkg/platform/audit/store/postgres"
)

const (
	shutdownTimeout       = 15 * time.Second
	memoryCleanupInterval = time.Minute
	postgresPurgeInterval = 5 * time.Minute
	auditBufferSize       = 1024
	auditBreakerThreshold = 5
	auditBreakerCooldown  = 30 * time.Second
	auditTopicPartitions  = 3
	auditTopicReplication = 1
	sessionCookieIssuer   = "assetdesk"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	slog.SetDefault(log)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()

	// Durable session storage: Redis when configured, else Postgres, else
	// process memory (single instance, development only).
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}
	db, err := postgres.Open(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	ephemeral := session.NewMemoryStore()
	var (
		durable session.Store
		pgStore *session.PostgresStore
	)
	switch {
	case rdb != nil:
		durable = session.NewRedisStore(rdb.Client)
		log.Info("durable sessions in redis")
	case db != nil:
		pgStore = session.NewPostgresStore(db)
		durable = pgStore
		log.Info("durable sessions in postgres")
	default:
		if cfg.IsProduction() {
			return errors.New("REDIS_URL or DATABASE_URL must be set when APP_ENV=production")
		}
		durable = session.NewMemoryStore()
		log.Warn("no durable session store configured, sessions are lost on restart")
	}

	sealer, err := session.NewSealer(cfg.Session.SealKey)
	if err != nil {
		return fmt.Errorf("token sealer: %w", err)
	}
	vault := session.NewVault(ephemeral, durable, sealer, cfg.Session.TTL, session.WithVaultLogger(log))
	bus := events.NewBus(log)
	cache := session.NewCache(durable, vault, bus, cfg.Session.TTL, session.WithCacheLogger(log))
	stopWatch := cache.Watch()
	defer stopWatch()

	auditStore, auditReader, closeAudit, err := openAuditStore(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
		publisher.WithCircuitBreaker(auditBreakerThreshold, auditBreakerCooldown),
	)
	defer func() {
		if err := auditor.Close(); err != nil {
			log.Warn("audit publisher close", "error", err, "pending", auditor.Pending())
		}
		closeAudit()
	}()

	backend := gateway.New(cfg.Backend.URL, vault,
		gateway.WithTimeout(cfg.Backend.Timeout),
		gateway.WithLogger(log),
		gateway.WithMetrics(gatewaymetrics.New(reg)),
	)
	provider := kratos.New(cfg.Identity.PublicURL, cfg.Backend.Timeout, kratos.WithLogger(log))

	bridge, err := auth.New(provider, backend, cache, vault,
		auth.WithLogger(log),
		auth.WithMetrics(authmetrics.New(reg)),
		auth.WithAuditPublisher(auditor),
		auth.WithActivityReader(auditReader),
		auth.WithRevalidateInterval(cfg.Session.RevalidateInterval),
	)
	if err != nil {
		return fmt.Errorf("auth bridge: %w", err)
	}
	stopBridge := bridge.Initialize(ctx)
	defer stopBridge()
	backend.SetUnauthorizedHandler(bridge.ForceLogout)

	if cfg.Payments.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is empty, card payments will fail")
	}
	coordinator := checkout.New(backend,
		processor.NewStripe(cfg.Payments.SecretKey,
			processor.WithURL(cfg.Payments.APIURL),
			processor.WithLogger(log),
		),
		bridge,
		checkout.WithLogger(log),
		checkout.WithMetrics(checkoutmetrics.New(reg)),
		checkout.WithAuditPublisher(auditor),
	)

	rlMetrics := ratelimitmetrics.New(reg)
	limiter := ratelimit.NewIPLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, ratelimit.WithLimiterMetrics(rlMetrics))
	throttle := ratelimit.New(limiter, log, ratelimit.WithMetrics(rlMetrics))

	jwtService := jwttoken.NewJWTService(cfg.Session.SigningKey, sessionCookieIssuer)
	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Sessions: jwttoken.NewJWTServiceAdapter(jwtService),
		Resolver: bridge,
		Throttle: throttle.RateLimit,
		Health:   healthChecks(rdb, db),
	}, httptransport.Handlers{
		Auth: httptransport.NewAuthHandler(bridge, httptransport.Cookies{
			Signer: jwtService,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Server.CookieSecure,
		}, log),
		HR:       httptransport.NewHRHandler(portal.NewHR(backend, portal.WithLogger(log)), log),
		Employee: httptransport.NewEmployeeHandler(portal.NewEmployee(backend, portal.WithLogger(log)), log),
		Checkout: httptransport.NewCheckoutHandler(coordinator, log),
	})
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Backend.Timeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("assetdesk listening", "addr", cfg.Server.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ephemeral.Run(gctx, memoryCleanupInterval)
		return nil
	})
	g.Go(func() error {
		cache.Run(gctx, memoryCleanupInterval)
		return nil
	})
	g.Go(func() error {
		limiter.Run(gctx)
		return nil
	})
	if mem, ok := durable.(*session.MemoryStore); ok {
		g.Go(func() error {
			mem.Run(gctx, memoryCleanupInterval)
			return nil
		})
	}
	if pgStore != nil {
		g.Go(func() error {
			pgStore.Run(gctx, postgresPurgeInterval, log)
			return nil
		})
	}
	if rdb != nil {
		relay := events.NewRedisRelay(rdb.Client, bus, events.DefaultChannel, log)
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil {
				log.Error("session change relay stopped, cached profiles may go stale across instances", "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// openAuditStore picks Kafka when brokers are configured, then the
// audit_events table, then structured logs. Only the table can be read back,
// so the reader is nil for the other two.
func openAuditStore(ctx context.Context, cfg *config.Config, db *sql.DB, log *slog.Logger) (audit.Store, audit.Reader, func(), error) {
	store, err := kafkastore.New(cfg.KafkaBrokers(), cfg.Audit.Topic)
	if err != nil {
		return nil, nil, nil, err
	}
	if store == nil {
		if db != nil {
			log.Info("audit events go to postgres")
			pg := pgaudit.New(db)
			return pg, pg, func() {}, nil
		}
		log.Info("audit events go to the log")
		return logstore.New(log), nil, func() {}, nil
	}
	if err := store.EnsureTopic(ctx, auditTopicPartitions, auditTopicReplication); err != nil {
		log.Warn("audit topic not ensured, relying on broker auto-create", "error", err)
	}
	log.Info("audit events go to kafka", "topic", cfg.Audit.Topic)
	return store, nil, store.Close, nil
}

func healthChecks(rdb *redis.Client, db *sql.DB) map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if rdb != nil {
		checks["redis"] = rdb.Health
	}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	return checks
}
