package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka/consumer"
	"go-ems/internal/payslip"

	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	outDir := os.Getenv("PAYSLIP_DIR")
	if outDir == "" {
		outDir = "payslips"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	generator := payslip.NewGenerator(outDir)

	reader := consumer.NewReader(
		[]string{kafkaBroker},
		"go-ems-payslip",
		events.PayrollApprovedTopic,
	)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollApproved(ctx, reader, generator, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
