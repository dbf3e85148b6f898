package consumer

import (
	"context"
	"encoding/json"

	"go-timekeep/internal/events"
	"go-timekeep/internal/salary"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeSalaryPayslipRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	salaryService salary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_payslip")
	log.Info("salary payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary payslip consumer stopped")
				return
			}
			log.Error("fetch salary payslip message failed", zap.Error(err))
			continue
		}

		var event events.SalaryPayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary payslip event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = salaryService.RenderPayslip(ctx, event.CompanyID, event.SalaryID)
		if err != nil {
			log.Error("render payslip failed",
				zap.String("salary_id", event.SalaryID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary payslip message failed", zap.Error(err))
			continue
		}

		log.Info("salary payslip rendered",
			zap.String("salary_id", event.SalaryID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
