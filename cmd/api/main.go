package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fulfillment-ledger/config"
	httpHandler "fulfillment-ledger/internal/adapter/http/handler"
	"fulfillment-ledger/internal/adapter/http/middleware"
	"fulfillment-ledger/internal/adapter/metrics"
	"fulfillment-ledger/internal/adapter/storage/memory"
	pgStorage "fulfillment-ledger/internal/adapter/storage/postgres"
	redisStorage "fulfillment-ledger/internal/adapter/storage/redis"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/internal/service"
	"fulfillment-ledger/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// repositories groups the storage ports for whichever driver is configured.
type repositories struct {
	orders       ports.OrderRepository
	events       ports.OrderEventRepository
	effects      ports.EffectRepository
	staff        ports.StaffDirectory
	wallets      ports.WalletRepository
	transactions ports.TransactionRepository
	stock        ports.StockRepository
	transactor   ports.DBTransactor
	health       ports.HealthChecker
	close        func()
}

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("FUL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("driver", cfg.Database.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting fulfillment ledger")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer repos.close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	ackStore := redisStorage.NewAckStore(rdb, cfg.Notification.AckTTL)
	adjustmentCache := redisStorage.NewAdjustmentCache(rdb)

	// Metrics
	var recorder ports.Metrics = metrics.Nop{}
	var httpMetrics middleware.HTTPObserver
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec := metrics.NewRecorder(reg)
		recorder, httpMetrics = rec, rec
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	// Initialize core services
	read := service.ReadPolicy{Attempts: cfg.Fulfillment.ReadRetries, Backoff: cfg.Fulfillment.ReadBackoff}
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	ledgerSvc := service.NewLedgerService(
		repos.wallets,
		repos.transactions,
		repos.transactor,
		adjustmentCache,
		recorder,
		service.LedgerOptions{
			OperationTimeout: cfg.Fulfillment.OperationTimeout,
			ConflictRetries:  cfg.Fulfillment.ConflictRetries,
			Read:             read,
			AdjustmentTTL:    cfg.Fulfillment.AdjustmentCacheTTL,
		},
		log,
	)
	stockSvc := service.NewStockReconciler(repos.stock, log)
	orderSvc := service.NewOrderService(
		repos.orders,
		repos.events,
		repos.effects,
		repos.staff,
		repos.transactor,
		ledgerSvc,
		stockSvc,
		recorder,
		service.OrderOptions{
			EarningPerDelivery: cfg.Fulfillment.EarningPerDelivery,
			OperationTimeout:   cfg.Fulfillment.OperationTimeout,
			Read:               read,
		},
		log,
	)
	arrivalSvc := service.NewArrivalService(
		repos.orders,
		orderSvc,
		ackStore,
		service.NewLogAlerter(log),
		recorder,
		service.ArrivalOptions{
			FetchTimeout: cfg.Notification.FetchTimeout,
			Read:         read,
		},
		log,
	)
	hub := service.NewArrivalHub(arrivalSvc, cfg.Notification.PollInterval, cfg.Notification.SessionIdle, log)

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limiter = redisStorage.NewRateLimitStore(rdb)
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		OrderSvc:       orderSvc,
		LedgerSvc:      ledgerSvc,
		ArrivalSvc:     arrivalSvc,
		Sessions:       hub,
		TokenSvc:       tokenSvc,
		RateLimiter:    limiter,
		RateLimitRules: middleware.RateLimitRules(cfg.RateLimit),
		HealthCheckers: []ports.HealthChecker{repos.health, redisStorage.NewHealthCheck(rdb)},
		HTTPMetrics:    httpMetrics,
		MetricsPath:    cfg.Metrics.Path,
		MetricsHandler: metricsHandler,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Server exited")
}

// openStorage connects the configured database driver. The memory driver
// keeps everything in process and is meant for local runs only.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.Database.Driver == "memory" {
		store := memory.NewStore()
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		return &repositories{
			orders:       store.Orders(),
			events:       store.Events(),
			effects:      store.Effects(),
			staff:        store.Staff(),
			wallets:      store.Wallets(),
			transactions: store.Transactions(),
			stock:        store.Stock(),
			transactor:   store,
			health:       store,
			close:        func() {},
		}, nil
	}

	if cfg.Database.MigrateOnStart {
		if err := pgStorage.Migrate(cfg.Database, log); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	log.Info().Msg("PostgreSQL connected")

	return &repositories{
		orders:       pgStorage.NewOrderRepo(pool),
		events:       pgStorage.NewOrderEventRepo(pool),
		effects:      pgStorage.NewEffectRepo(pool),
		staff:        pgStorage.NewStaffRepo(pool),
		wallets:      pgStorage.NewWalletRepo(pool),
		transactions: pgStorage.NewTransactionRepo(pool),
		stock:        pgStorage.NewStockRepo(pool),
		transactor:   pgStorage.NewTransactor(pool),
		health:       pgStorage.NewHealthCheck(pool),
		close:        pool.Close,
	}, nil
}
