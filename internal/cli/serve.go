package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/app"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/cache"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/config"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/db"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/worker"
)

func newServeCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), loadConfig(*dbPath))
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.Default()

	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Info("quizd starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("worker_count=%d queue_size=%d", cfg.WorkerCount, cfg.QueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	var leaderboard cache.LeaderboardCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable at %s, leaderboard reads will fall back to the database: %v", cfg.RedisAddr, err)
		}
		leaderboard = cache.NewRedisLeaderboard(client, cfg.LeaderboardCacheTTL)
		log.Info("leaderboard cache: redis %s", cfg.RedisAddr)
	} else {
		leaderboard = cache.NewMemoryLeaderboard(cfg.LeaderboardCacheTTL)
		log.Info("leaderboard cache: in-process")
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	srv := app.NewServer(database.DB, app.Options{
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTTTL,
		AdminKey:     cfg.AdminSecretKey,
		QuizCacheTTL: cfg.QuizCacheTTL,
	}, leaderboard, pool)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	pool.Start(workerCtx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serveErr:
		if err != nil {
			log.Error("HTTP server error: %v", err)
			pool.Stop()
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	cancelWorkers()
	pool.Stop()

	log.Info("quizd stopped")
	return nil
}
