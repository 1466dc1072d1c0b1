package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/shop-cart/internal/adapter/handler"
	"github.com/rl1809/shop-cart/internal/adapter/storage"
	"github.com/rl1809/shop-cart/internal/config"
	"github.com/rl1809/shop-cart/internal/core/service"
	"github.com/rl1809/shop-cart/internal/logging"
	"github.com/rl1809/shop-cart/internal/port"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sessionID := uuid.NewString()
	logger, err := logging.New(logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		SessionID: sessionID,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logging.Sync(logger)

	ledgers, closeBackend, err := openLedgers(ctx, cfg, sessionID, logger)
	if err != nil {
		logger.Fatal("failed to open ledgers", zap.String("backend", string(cfg.Backend)), zap.Error(err))
	}
	logger.Info("ledgers ready", zap.String("backend", string(cfg.Backend)))

	cartService := service.NewCartService(ledgers, logger)
	console := handler.NewConsoleHandler(cartService, os.Stdin, os.Stdout, logger)

	runErr := console.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ledgers.Close(closeCtx); err != nil {
		logger.Warn("failed to discard ledgers", zap.Error(err))
	}
	closeBackend()

	if runErr != nil {
		logger.Error("session aborted", zap.Error(runErr))
		logging.Sync(logger)
		os.Exit(1)
	}
}

func openLedgers(ctx context.Context, cfg config.Config, sessionID string, logger *zap.Logger) (port.LedgerRepository, func(), error) {
	switch cfg.Backend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

		return storage.NewRedisAdapter(rdb, sessionID, cfg.SessionTTL), func() { rdb.Close() }, nil

	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("connected to mysql")

		adapter, err := storage.NewMySQLAdapter(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return adapter, func() { db.Close() }, nil
	}

	return storage.NewMemoryAdapter(), func() {}, nil
}
