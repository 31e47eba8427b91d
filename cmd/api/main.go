package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rafaelduarte/gamesetup-backend/api/routes"
	"github.com/rafaelduarte/gamesetup-backend/internal/auth"
	"github.com/rafaelduarte/gamesetup-backend/internal/games"
	"github.com/rafaelduarte/gamesetup-backend/internal/setups"
	"github.com/rafaelduarte/gamesetup-backend/internal/users"
	"github.com/rafaelduarte/gamesetup-backend/pkg/config"
	"github.com/rafaelduarte/gamesetup-backend/pkg/db"
	"github.com/rafaelduarte/gamesetup-backend/pkg/logger"
	"github.com/rafaelduarte/gamesetup-backend/pkg/metrics"
	"github.com/rafaelduarte/gamesetup-backend/pkg/migrate"
	"github.com/rafaelduarte/gamesetup-backend/pkg/rawg"
	"github.com/rafaelduarte/gamesetup-backend/pkg/redis"
)

const shutdownGrace = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.JWT.UsesInsecureDefault() {
		logg.Warn(context.Background(), "running on the default jwt secret, set GAMESETUP_JWT_SECRET")
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	gamesParams := games.ServiceParams{
		Catalog:  rawg.NewClient(cfg.RAWG),
		CacheTTL: cfg.RAWG.CacheTTL,
		Logger:   logg,
	}

	// The games cache is optional. With no redis configured lookups always
	// go upstream.
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		gamesParams.Cache = redisClient
	}

	gamesService, err := games.NewService(gamesParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create games service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  users.NewRepository(dbClient.DB()),
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	setupsService, err := setups.NewService(setups.ServiceParams{
		Repo:        setups.NewRepository(dbClient.DB()),
		Games:       gamesService,
		CatalogPath: cfg.FeatureFlags.CatalogPath,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create setups service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			Metrics:         metrics.NewHTTPMetrics(),
			AuthService:     authService,
			RegisterService: registerService,
			GamesService:    gamesService,
			SetupsService:   setupsService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
			os.Exit(1)
		}
	}
}
