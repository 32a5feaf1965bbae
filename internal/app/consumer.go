package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hris-payroll/internal/config"
	"hris-payroll/internal/events"
	"hris-payroll/internal/messaging/kafka/consumer"
	"hris-payroll/internal/payroll"
	"hris-payroll/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 5)
	if err != nil {
		logger.Warn("redis unavailable, calendar cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	engine, err := NewEngine(cfg, gormDB, redisClient, logger)
	if err != nil {
		return err
	}
	exporter := payroll.NewFileExporter(engine.Calculator, cfg.ReportDir, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.PayrollReportRequestedTopic,
		GroupID:        "hris-payroll-report",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollReportRequested(ctx, reader, exporter, cfg.RetrievalBaseDelay, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
