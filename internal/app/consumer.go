package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-payroll/internal/config"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer renders payslip PDFs from payslip_generated events until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	engine, err := cfg.Payroll.Engine()
	if err != nil {
		return err
	}

	payrollService := payroll.NewService(
		sqlDB,
		payroll.NewRepository(gormDB),
		payroll.NewPayslipBuilder(engine, logger),
		nil,
		payroll.NewPDFRenderer(""),
		payroll.NewFileStore(cfg.Storage.PDFDir),
		logger,
	)

	reader := connection.NewKafkaReader(cfg.Kafka, events.PayslipGeneratedTopic)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayslipGenerated(ctx, reader, payrollService, logger, consumer.RetryConfig{
		MaxAttempts: cfg.Kafka.RenderRetries,
		Backoff:     cfg.Kafka.RenderBackoff,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
