package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"twa-games-backend/internal/bot"
	"twa-games-backend/internal/bot/session"
	"twa-games-backend/internal/common/config"
	"twa-games-backend/internal/common/logger"
	"twa-games-backend/internal/common/middleware"
	adminservice "twa-games-backend/internal/features/admin/service"
	gamehttp "twa-games-backend/internal/features/game/delivery/http"
	gamesqlite "twa-games-backend/internal/features/game/repository/sqlite"
	gameservice "twa-games-backend/internal/features/game/service"
	prohttp "twa-games-backend/internal/features/prorequest/delivery/http"
	prosqlite "twa-games-backend/internal/features/prorequest/repository/sqlite"
	proservice "twa-games-backend/internal/features/prorequest/service"
	userhttp "twa-games-backend/internal/features/user/delivery/http"
	usersqlite "twa-games-backend/internal/features/user/repository/sqlite"
	userservice "twa-games-backend/internal/features/user/service"
	"twa-games-backend/internal/platform/db"
	redisplatform "twa-games-backend/internal/platform/redis"
	"twa-games-backend/internal/platform/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config load: %v", err))
	}

	logger.Init("twa-games-backend", cfg.Debug)

	sqlDB, err := db.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer sqlDB.Close()

	logger.Info().Str("path", cfg.Database.Path).Msg("Database ready")

	// Repositories and services.
	userRepo := usersqlite.NewSQLiteRepository(sqlDB)
	gameRepo := gamesqlite.NewSQLiteRepository(sqlDB)
	proRepo := prosqlite.NewSQLiteRepository(sqlDB)

	userSvc := userservice.NewUserService(userRepo)
	gameSvc := gameservice.NewGameService(gameRepo)
	proSvc := proservice.NewProRequestService(proRepo)

	// Conversational front end.
	tgClient := telegram.NewClient(cfg.Telegram.BotToken)

	sessions, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize session store")
	}
	defer closeSessions()

	adminSvc := adminservice.NewAdminService(cfg.Telegram.AdminIDs, userSvc, gameSvc, proSvc,
		bot.NewNotifier(tgClient))

	tgBot := bot.New(tgClient, tgClient, sessions, userSvc, adminSvc,
		cfg.Telegram.WebAppURL, cfg.Telegram.PollTimeout)

	go tgBot.Run(ctx)
	logger.Info().Msg("Bot polling started")

	// HTTP API.
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	// Consumed by the authoring web app; deliberately permissive.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	userhttp.NewUserHandler(userSvc).RegisterRoutes(api)
	gamehttp.NewGameHandler(gameSvc).RegisterRoutes(api)
	prohttp.NewProRequestHandler(proSvc, userSvc).RegisterRoutes(api)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown")
	}
	logger.Info().Msg("Server stopped")
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		client, err := redisplatform.Open(ctx, addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("addr", addr).Msg("Using Redis session store")
		return session.NewRedisStore(client, cfg.Session.TTL), func() { _ = client.Close() }, nil
	}

	store := session.NewMemoryStore(cfg.Session.TTL)
	return store, store.Close, nil
}
