package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kv-storage/core/config"
	"kv-storage/core/database"
	"kv-storage/core/loader"
	"kv-storage/core/logger"
	"kv-storage/core/middleware/auth"
	"kv-storage/core/middleware/rayid"
	"kv-storage/core/server"
	"kv-storage/core/storage"
	"kv-storage/feature/backup"
	"kv-storage/feature/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "kv-storage/docs/swagger"
)

// @title KV Storage Emulator API
// @version 1.0
// @description Local emulator of the KV Storage REST API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local KV Storage emulator",
	Long: `Starts an HTTP server speaking the KV Storage wire protocol, backed by memory
or a SQL database, plus snapshot endpoints when object storage is reachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Server.IsValidBackend() {
			return fmt.Errorf("invalid server backend %q (use memory or sql)", cfg.Server.Backend)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Open the repository
		repo, err := openRepository(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}

		// 4. Initialize Storage (optional, backs the backup feature)
		var objects storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Object storage unavailable, backups disabled", zap.Error(err))
		} else {
			objects = client
		}

		// 5. Initialize Feature Loader
		storeFeature := store.NewFeature(repo, logg)
		mgr := loader.NewManager()
		mgr.Register(storeFeature)
		mgr.Register(backup.NewFeature(storeFeature.Store(), objects, cfg.Storage, logg))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          server.ErrorHandler,
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging
		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			err := c.Next()
			l := logger.WithRequestID(logg, c)
			if err != nil {
				l.Debug("Request error", zap.Error(err))
			}
			l.Info("Request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		})

		// 3. Public routes
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "backend": cfg.Server.Backend})
		})
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		keys := cfg.Server.Keys()
		if len(keys) == 0 {
			logg.Warn("SERVER_API_KEYS is empty; any bearer token is accepted")
		}
		protect := auth.New(auth.Config{APIKeys: keys})
		app.Use("/v1", protect)
		app.Use("/backups", protect)

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		// 6. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Server.Backend))
			errCh <- app.Listen(":" + cfg.Server.Port)
		}()

		// 7. Graceful Shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

// openRepository builds the configured store backend.
func openRepository(ctx context.Context, cfg *config.Config, logg *zap.Logger) (store.Repository, error) {
	if cfg.Server.Backend == server.BackendMemory {
		logg.Info("Using in-memory backend; data is lost on exit")
		return store.NewMemoryRepository(), nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required for sql backend: %w", err)
	}

	repo := store.NewSQLRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))
	return repo, nil
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
