package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-paytrack/internal/cashadvance"
	"go-paytrack/internal/clock"
	"go-paytrack/internal/deduction"
	"go-paytrack/internal/events"
	"go-paytrack/internal/messaging/kafka"
	"go-paytrack/internal/messaging/kafka/consumer"
	"go-paytrack/internal/notifier"
	"go-paytrack/internal/policy"
	"go-paytrack/internal/settlement"
	"go-paytrack/internal/shared/connection"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	clockRepo := clock.NewRepository(gormDB)
	advanceRepo := cashadvance.NewRepository(gormDB)
	deductionRepo := deduction.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	deductionService := deduction.NewService(sqlDB, deductionRepo)
	policyService := policy.NewService(policyRepo)
	settlementService := settlement.NewService(sqlDB, clockRepo, advanceRepo, deductionService, policyService, outboxRepo)

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	sender, err := notifier.NewEmailNotifier(notifier.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: os.Getenv("SMTP_FROM_NAME"),
	})
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.SettlementNotifyTopic,
		GroupID:        "go-paytrack-settlement-notify",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeSettlementNotify(ctx, reader, settlementService, sender, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
