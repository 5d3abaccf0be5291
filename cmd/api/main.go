package main

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/pkg/cron"
	"Inkpost/internal/pkg/database"
	"Inkpost/internal/pkg/logger"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	gin.SetMode(cfg.Server.Mode)

	// 初始化日志
	logger.InitLogger(cfg.Logstash)

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	if dbCfg.AutoMigrate {
		if err = database.AutoMigrate(db); err != nil {
			log.Error("Fatal error: failed to migrate database", "err", err)
			panic(err)
		}
	}

	// Token 黑名单，未配置 Redis 时退化为进程内实现
	var blacklist security.Blacklist
	if cfg.Redis.Addr != "" {
		rdb, err := redis.InitRedis(cfg.Redis)
		if err != nil {
			log.Error("Fatal error: failed to create redis connection", "err", err)
			panic(err)
		}
		defer func() { _ = rdb.Close() }()
		blacklist = redis.NewTokenBlacklist(rdb)
	} else {
		log.Warn("redis.addr is empty, using in-memory token blacklist")
		memory := security.NewMemoryBlacklist()
		blacklist = memory

		cronMgr, err := cron.InitCron(memory)
		if err != nil {
			log.Error("Fatal error: failed to start cron jobs", "err", err)
			panic(err)
		}
		defer cronMgr.Stop()
	}

	// 依赖注入
	app, err := wire.BuildApplication(db, blacklist, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	if sqlDB, err := app.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("App exited successfully.")
}
