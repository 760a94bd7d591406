package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/cache"
	"github.com/yukikurage/workout-api/internal/config"
	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/metrics"
	"github.com/yukikurage/workout-api/internal/repository"
	"github.com/yukikurage/workout-api/internal/server"
	"github.com/yukikurage/workout-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "workout-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		ServiceName: "workout-api",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})
	gin.SetMode(cfg.App.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database and run migrations
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		return err
	}
	created, err := database.MigrateDatabase(db)
	if err != nil {
		return err
	}
	if len(created) > 0 {
		log.InfoFields(ctx, "created indexes", map[string]any{"indexes": created})
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(cfg.JWT)
	if err != nil {
		return err
	}

	m := metrics.New()
	store := repository.NewStore(db)

	catalogOpts := []services.CatalogOption{
		services.WithCacheRecorder(m),
		services.WithLogger(log),
	}
	if cfg.Redis.CacheEnabled {
		client, err := cache.Dial(ctx, cfg.Redis)
		if err != nil {
			log.Warn(ctx, "catalog cache disabled", err)
		} else {
			defer client.Close()
			catalogOpts = append(catalogOpts, services.WithCache(cache.NewRedisCache(client, "workout:catalog:"), cfg.Redis.CacheTTL))
		}
	}

	svc := server.Services{
		Auth:      services.NewAuthService(store, tokens),
		Goals:     services.NewGoalService(store),
		Schedules: services.NewScheduleService(store),
		Profiles:  services.NewProfileService(store, m),
		Catalog:   services.NewCatalogService(store, catalogOpts...),
	}
	if cfg.OpenAI.APIKey != "" {
		svc.Suggestions = services.NewSuggestionService(store, services.NewAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	} else {
		log.Info(ctx, "exercise suggestions disabled: no OpenAI API key")
	}

	router := server.NewRouter(svc, server.Options{
		Log:          log,
		Metrics:      m,
		SessionStore: sessionStore,
		SessionName:  cfg.Session.CookieName,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoFields(gctx, "server starting", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return closeDB(db)
	})

	return g.Wait()
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.Session.Store {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.Session.Secret))
	default:
		rs, err := redisStore.NewStore(
			cfg.Redis.SessionPoolSize,
			"tcp",
			cfg.Redis.Addr(),
			"",
			cfg.Redis.Password,
			[]byte(cfg.Session.Secret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		store = rs
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.App.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
