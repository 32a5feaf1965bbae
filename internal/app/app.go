package app

import (
	"errors"

	"hris-payroll/internal/config"
	"hris-payroll/internal/middleware"
	"hris-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func postgresConfig(cfg config.Config) connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
		MaxOpen:  cfg.DBMaxOpen,
		MaxIdle:  cfg.DBMaxIdle,
	}
}

func connectDatabase(cfg config.Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(postgresConfig(cfg), 5)
}

// BuildApp connects the stores and registers every route on router. The
// returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 5)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	engine, err := NewEngine(cfg, gormDB, redisClient, logger)
	if err != nil {
		cleanup()
		return nil, err
	}

	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L().Named("http")))

	if err := registerModules(router, cfg, sqlDB, redisClient, engine, logger); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
