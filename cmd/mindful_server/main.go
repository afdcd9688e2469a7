package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mindful_server/internal/config"
	"mindful_server/internal/dao/gormdb"
	"mindful_server/internal/dao/gormdb/repository"
	myredis "mindful_server/internal/dao/redis"
	"mindful_server/internal/handler"
	"mindful_server/internal/https_server"
	"mindful_server/internal/infrastructure/llm"
	"mindful_server/internal/infrastructure/logger"
	"mindful_server/internal/infrastructure/middleware"
	"mindful_server/internal/infrastructure/mq"
	"mindful_server/internal/infrastructure/tracing"
	"mindful_server/internal/router"
	"mindful_server/internal/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. config
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// 2. logger
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized", zap.String("mode", conf.MainConfig.Mode))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. tracing
	shutdownTracing, err := tracing.Init(rootCtx, &conf.TraceConfig, conf.AppName, conf.MainConfig.Mode)
	if err != nil {
		zap.L().Fatal("init tracing failed", zap.Error(err))
	}

	// 4. database
	db, err := gormdb.Open(&conf.DatabaseConfig)
	if err != nil {
		zap.L().Fatal("open database failed", zap.Error(err))
	}
	if err := gormdb.Migrate(db); err != nil {
		zap.L().Fatal("migrate database failed", zap.Error(err))
	}
	repos := repository.NewRepositories(db)

	// 5. cache
	cache := myredis.Init(rootCtx, &conf.RedisConfig)

	// 6. domain events
	publisher, err := mq.NewPublisher(&conf.KafkaConfig)
	if err != nil {
		zap.L().Fatal("init publisher failed", zap.Error(err))
	}
	if conf.KafkaConfig.MessageMode == "kafka" {
		go func() {
			if err := mq.Consume(rootCtx, &conf.KafkaConfig, conf.AppName+"-audit", mq.LogHandler); err != nil {
				zap.L().Error("event consumer stopped", zap.Error(err))
			}
		}()
	}

	// 7. completion model; without one the journal endpoint answers with the fallback
	model, err := llm.New(rootCtx, &conf.AIConfig)
	if err != nil {
		zap.L().Warn("completion model unavailable", zap.String("provider", conf.AIConfig.Provider), zap.Error(err))
		model = nil
	}

	// 8. services and handlers
	services := service.NewServices(service.Deps{
		Repos:     repos,
		Cache:     cache,
		Publisher: publisher,
		Model:     model,
		Config:    conf,
	})
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translations failed", zap.Error(err))
	}
	handlers := handler.NewHandlers(services)

	health := handler.NewHealthHandler().
		Register("database", func(ctx context.Context) error { return gormdb.Ping(ctx, db) }, true).
		Register("cache", cache.Ping, false)

	limiter := middleware.NewRateLimiter(conf.JournalRPS, conf.JournalBurst)
	limiter.StartCleanup(rootCtx, time.Minute)

	// 9. http server
	engine := https_server.Init(conf, router.NewRouter(handlers, health, limiter.Handler()))
	srv := https_server.NewServer(conf, engine)

	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	zap.L().Info("shutting down server...")
	shutdown(srv, publisher, cache, db, shutdownTracing)
	zap.L().Info("server stopped")
}

// shutdown drains HTTP first, then flushes events and cache writes before
// closing storage.
func shutdown(srv *http.Server, publisher mq.Publisher, cache myredis.AsyncCacheService, db *gorm.DB, shutdownTracing tracing.ShutdownFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("http shutdown", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		zap.L().Error("close publisher", zap.Error(err))
	}
	if err := cache.Close(); err != nil {
		zap.L().Error("close cache", zap.Error(err))
	}
	if err := gormdb.Close(db); err != nil {
		zap.L().Error("close database", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		zap.L().Error("shutdown tracing", zap.Error(err))
	}
	logger.Sync()
}
