package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/config"
	"github.com/Ishan007-bot/Sports-Arena-Backend/db"
	"github.com/Ishan007-bot/Sports-Arena-Backend/handlers"
	"github.com/Ishan007-bot/Sports-Arena-Backend/live"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
	api "github.com/Ishan007-bot/Sports-Arena-Backend/routes"
	"github.com/Ishan007-bot/Sports-Arena-Backend/services"
	"github.com/Ishan007-bot/Sports-Arena-Backend/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/redis/go-redis/v9"
)

const statsInterval = time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.DefaultOptions(), logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewR2Uploader(appCtx, cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	} else {
		logger.Warn("R2 is not configured, team logo upload is disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run(appCtx)
	logger.Info("WebSocket hub started")

	publisher, redisClient := newPublisher(appCtx, cfg, hub, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis client", slog.Any("error", err))
			}
		}()
	}

	clk := clock.New()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	statsRepo := repositories.NewPostgresStatsRepository(dbConn)
	transactor := repositories.NewTransactor(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, logger)
	userService := services.NewUserService(userRepo, logger)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	matchService := services.NewMatchService(matchRepo, publisher, clk, logger)
	tournamentService := services.NewTournamentService(transactor, tournamentRepo, teamRepo, matchRepo, clk, logger)
	dashboardService := services.NewDashboardService(statsRepo, hub)
	logger.Info("services initialized")

	go reportStats(appCtx, hub, matchService, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		Health:     handlers.NewHealthHandler(dbConn, clk),
		Match:      handlers.NewMatchHandler(matchService),
		Sport:      handlers.NewSportHandler(),
		Team:       handlers.NewTeamHandler(teamService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		User:       handlers.NewUserHandler(authService, userService, cfg.JWTSecretKey, clk),
		WebSocket:  handlers.NewWebSocketHandler(hub, cfg.ClientURLs, logger),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.ClientURLs,
		Logger:         logger,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stopApp()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}

	// Hijacked websocket connections are not tracked by Shutdown; stopping
	// the hub closes them.
	stopApp()
	logger.Info("application exited")
}

// newPublisher always fans events out to local viewers. With REDIS_URL set it
// also publishes to Redis and starts a relay for events from other instances.
func newPublisher(ctx context.Context, cfg *config.Config, hub *live.Hub, logger *slog.Logger) (live.Publisher, *redis.Client) {
	local := live.NewHubPublisher(hub)
	if cfg.RedisURL == "" {
		return local, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid REDIS_URL, continuing without redis fan-out", slog.Any("error", err))
		return local, nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("redis unreachable, continuing without redis fan-out", slog.Any("error", err))
		_ = client.Close()
		return local, nil
	}

	origin := uuid.NewString()
	relay := live.NewRedisRelay(client, hub, origin, logger)
	go func() {
		if err := relay.Run(ctx); err != nil {
			logger.Error("redis relay stopped", slog.Any("error", err))
		}
	}()
	logger.Info("redis fan-out enabled", slog.String("origin", origin))

	return live.NewMultiPublisher(local, live.NewRedisPublisher(client, origin)), client
}

func reportStats(ctx context.Context, hub *live.Hub, matches services.MatchService, logger *slog.Logger) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	logger.Info("stats reporter started", slog.Duration("interval", statsInterval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			liveMatches, err := matches.ListLiveMatches(queryCtx)
			cancel()
			if err != nil {
				logger.Error("stats: failed to count live matches", slog.Any("error", err))
				continue
			}
			logger.Info("stats",
				slog.Int("live_matches", len(liveMatches)),
				slog.Int("scoreboard_viewers", hub.Viewers(live.LiveScoreboardTopic)))
		}
	}
}
