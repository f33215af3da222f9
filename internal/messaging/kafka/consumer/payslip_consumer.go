package consumer

import (
	"context"
	"encoding/json"

	"go-ems/internal/events"
	"go-ems/internal/payslip"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollApproved merender payslip PDF untuk setiap payroll yang
// approved. Pesan yang tidak bisa di-decode di-commit dan dilewati; kegagalan
// render tidak di-commit agar dicoba ulang.
func ConsumePayrollApproved(
	ctx context.Context,
	reader *kafkago.Reader,
	generator *payslip.Generator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_approved")
	log.Info("payroll approved consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll approved consumer stopped")
				return
			}
			log.Error("fetch payroll approved message failed", zap.Error(err))
			continue
		}

		var event events.PayrollStatusEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_approved event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		path, err := generator.Generate(event)
		if err != nil {
			log.Error("generate payslip failed",
				zap.String("payroll_id", event.PayrollID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll approved message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated",
			zap.String("payroll_id", event.PayrollID),
			zap.String("path", path),
		)
	}
}

// NewReader membangun kafka reader untuk consumer group payslip.
func NewReader(brokers []string, groupID, topic string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
