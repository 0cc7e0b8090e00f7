package main

import (
	"fmt"
	"log"

	"github.com/domen5/TaskTrail-sub000/internal/config"
	"github.com/domen5/TaskTrail-sub000/internal/database"
	"github.com/domen5/TaskTrail-sub000/internal/router"

	"go.uber.org/zap"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	// redis holds the token blacklist
	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}

	// setup router
	r, err := router.SetupRouter(cfg, db, redisClient, logger)
	if err != nil {
		logger.Fatal("setup router", zap.Error(err))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("run server", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = lvl
	}
	return zcfg.Build()
}
