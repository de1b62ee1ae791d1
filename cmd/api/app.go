// cmd/api/app.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/your-org/repairshop-backend/internal/config"
	"github.com/your-org/repairshop-backend/internal/domain/bill"
	"github.com/your-org/repairshop-backend/internal/domain/catalog"
	"github.com/your-org/repairshop-backend/internal/domain/damage"
	"github.com/your-org/repairshop-backend/internal/domain/intake"
	"github.com/your-org/repairshop-backend/internal/domain/inventory"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
	"github.com/your-org/repairshop-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/repairshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/repairshop-backend/internal/infrastructure/docapi"
	"github.com/your-org/repairshop-backend/internal/interfaces/http"
	"github.com/your-org/repairshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/repairshop-backend/internal/interfaces/http/routes"
	"github.com/your-org/repairshop-backend/internal/pkg/logger"
)

func runServe(cmd *cobra.Command, _ []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.Logging)
	log.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	server := http.NewServer(cfg, log, store, redisClient.GetClient(), buildHandlers(cfg, log, store, redisClient))

	log.Info("✅ All systems operational!")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("failed to shutdown HTTP server gracefully")
	}

	log.Info("✅ Server shutdown completed")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Store.Backend != config.BackendPostgres {
		return fmt.Errorf("migrate requires STORE_BACKEND=%s, got %s", config.BackendPostgres, cfg.Store.Backend)
	}

	log := logger.New(cfg.Logging)

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	seed, _ := cmd.Flags().GetBool("seed")
	return migrate(db, log, seed)
}

func migrate(db *postgres.DB, log logrus.FieldLogger, seed bool) error {
	migration := postgres.NewMigration(db.GetDB(), log)

	if err := migration.RunAutoMigrations(); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("index creation failed")
	}

	if seed {
		if err := migration.SeedInitialData(); err != nil {
			log.WithError(err).Warn("data seeding failed")
		}
	}
	return nil
}

// openStore connects the configured inventory backend
func openStore(cfg *config.Config, log *logrus.Logger) (inventory.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendDocAPI:
		client := docapi.NewClient(cfg.DocAPI, log)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.DocAPI.Timeout)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			log.WithError(err).Warn("document API not reachable yet")
		}
		return client, func() {}, nil

	default:
		db, err := postgres.NewConnection(cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		// Development keeps the schema in step with the models
		if cfg.IsDevelopment() {
			if err := migrate(db, log, true); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}

		return postgres.NewStore(db.GetDB()), func() { _ = db.Close() }, nil
	}
}

func buildHandlers(cfg *config.Config, log *logrus.Logger, store inventory.Store, redisClient *redis.Client) routes.Handlers {
	timeout := cfg.Reconcile.CallTimeout

	engine := reconcile.NewEngine(store, log.WithField("component", "reconcile"), timeout)

	catalogService := catalog.NewService(
		store,
		redis.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL),
		redis.NewLocker(redisClient, cfg.Catalog.LockTTL, log),
		log.WithField("component", "catalog"),
		timeout,
	)

	billService := bill.NewService(
		redis.NewSessionStore(redisClient, cfg.Bill.SessionTTL),
		redis.NewLocker(redisClient, cfg.Bill.LockTTL, log),
		engine,
		log.WithField("component", "bill"),
	)

	return routes.Handlers{
		Stock:     handlers.NewStockHandler(store, timeout),
		Intake:    handlers.NewIntakeHandler(intake.NewService(store, store, log.WithField("component", "intake"), timeout)),
		Reconcile: handlers.NewReconcileHandler(engine),
		Bill:      handlers.NewBillHandler(billService),
		Damage:    handlers.NewDamageHandler(damage.NewService(store, log.WithField("component", "damage"), timeout)),
		Catalog:   handlers.NewCatalogHandler(catalogService),
	}
}
