package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"restaurant-storefront/internal/cache"
	"restaurant-storefront/internal/catalog"
	"restaurant-storefront/internal/config"
	"restaurant-storefront/internal/database"
	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/messaging"
	"restaurant-storefront/internal/review"
	"restaurant-storefront/internal/services/notification"
	"restaurant-storefront/internal/services/storefront"
	"restaurant-storefront/internal/session"
)

const janitorInterval = time.Minute

func main() {
	var (
		mode       = flag.String("mode", "", "Service mode (storefront, order-feed)")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		port       = flag.Int("port", 0, "HTTP port, overrides the config file")
		prefetch   = flag.Int("prefetch", 10, "RabbitMQ prefetch count for the order feed")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	switch *mode {
	case "storefront":
		err = runStorefront(ctx, cfg, log)
	case "order-feed":
		err = runOrderFeed(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func runStorefront(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	restaurant, err := cfg.RestaurantConfig()
	if err != nil {
		return fmt.Errorf("restaurant config: %w", err)
	}

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, database.Migrations()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	rdb, err := cache.NewClient(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer rdb.Close()
	log.Info("redis_connected", "Connected to Redis", requestID, map[string]interface{}{
		"addr": cfg.RedisAddr(),
	})

	conn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	cat := catalog.NewService(
		database.NewCatalogStore(db),
		cache.NewCatalogCache(rdb, "storefront", cfg.Redis.TTL),
		restaurant,
		log,
	)
	if err := cat.Load(ctx); err != nil {
		// the storefront still serves sessions; staff can refresh once the store is back
		log.Error("catalog_load_failed", "Starting with an empty menu", requestID, err, nil)
	}

	sessions := session.NewManager(cat, database.NewOrderStore(db), messaging.NewPublisher(conn, log), log)
	reviews := review.NewService(database.NewReviewStore(db), log)
	handler := storefront.NewHandler(sessions, cat, reviews, log, cfg.Server.AdminPasscode).
		WithHealthCheck("postgres", db).
		WithHealthCheck("redis", redisPinger{rdb})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           storefront.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("service_started", fmt.Sprintf("Storefront started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("graceful_shutdown", "Shutting down storefront", requestID, nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return sessions.RunJanitor(gctx, janitorInterval, cfg.Server.SessionIdle)
	})

	return g.Wait()
}

func runOrderFeed(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	hostname, _ := os.Hostname()
	consumer := messaging.NewConsumer(conn, log, messaging.StaffOrdersQueue, "order-feed-"+hostname, prefetch)

	return notification.NewSubscriber(consumer, log, os.Stdout).Start(ctx)
}

// redisPinger adapts the redis client to the health check interface
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
