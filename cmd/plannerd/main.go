package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/calendar"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/config"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/handler"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/httpserver"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/notify"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/remote"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/storage"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/store"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/timer"
	"github.com/hasanulkarim/UltimateProjectPlanner/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	if os.Getenv("PLANNER_DEV") != "" {
		log = logger.NewDevelopmentLogger()
	}
	defer log.Sync()

	log.Info("Starting plannerd...",
		zap.String("port", cfg.Server.Port),
		zap.String("sqlite_path", cfg.SQLite.Path),
		zap.String("redis_addr", cfg.Redis.Addr),
		zap.Bool("calendar_enabled", cfg.Calendar.Enabled),
	)

	// Durable local store
	local, err := storage.OpenSQLite(cfg.SQLite.Path, log)
	if err != nil {
		log.Fatal("Failed to open local store", zap.Error(err))
	}
	defer local.Close()

	// Remote mirror, only when Redis is configured
	var mirror remote.Mirror
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unreachable, remote sync disabled", zap.Error(err))
		} else {
			mirror = remote.NewRedisMirror(rdb, log)
			log.Info("Remote mirror connected", zap.String("addr", cfg.Redis.Addr))
		}
		defer rdb.Close()
	}

	st := store.New(store.Options{
		Local:                local,
		Mirror:               mirror,
		Logger:               log,
		StripDeletedCategory: cfg.Planner.StripDeletedCategory,
	})
	if err := st.Load(); err != nil {
		log.Fatal("Failed to load planner state", zap.Error(err))
	}

	// Timer event notifier, only when the broker is configured
	var notifier timer.Notifier
	var publisher *notify.Publisher
	if cfg.MQ.URL != "" {
		publisher, err = notify.NewPublisher(cfg.MQ.URL, log)
		if err != nil {
			log.Warn("Message broker unreachable, timer events disabled", zap.Error(err))
		} else {
			notifier = publisher
			defer publisher.Close()
			log.Info("Timer event publisher connected")
		}
	}

	runner := timer.NewRunner(st, notifier, log)
	runner.Start()
	defer runner.Stop()

	// Optional calendar exporter
	var exporter *calendar.Exporter
	if cfg.Calendar.Enabled {
		exporter, err = calendar.NewExporter(context.Background(), cfg.Calendar, log)
		if err != nil {
			log.Warn("Calendar export disabled", zap.Error(err))
			exporter = nil
		} else {
			log.Info("Calendar exporter ready", zap.String("calendar_id", cfg.Calendar.CalendarID))
		}
	}

	router := httpserver.NewRouter(httpserver.Handlers{
		Tasks:      handler.NewTaskHandler(st, exporter, log),
		Projects:   handler.NewProjectHandler(st, log),
		Timer:      handler.NewTimerHandler(st, log),
		Stats:      handler.NewStatsHandler(st, log),
		Session:    handler.NewSessionHandler(st, cfg.JWT.Secret, log),
		Categories: handler.NewCategoryHandler(st, log),
	}, local, publisher, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("plannerd is fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down plannerd gracefully...")

	runner.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	// Sign out so the mirror subscription closes before the client does.
	st.SetUserID("")

	log.Info("plannerd shutdown complete")
}
