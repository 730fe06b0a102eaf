package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-payroll/internal/events"
	payrollerrors "go-payroll/internal/payroll/errors"

	"go.uber.org/zap"
)

type PayslipPDFGenerator interface {
	GeneratePDF(ctx context.Context, id string) (string, error)
}

type RetryConfig struct {
	MaxAttempts int
	Backoff     time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.Backoff <= 0 {
		c.Backoff = 2 * time.Second
	}
	return c
}

// ConsumePayslipGenerated renders the PDF of every newly generated payslip.
// Undecodable messages and payslips deleted in the meantime are committed and skipped.
// A failing render is retried in place with a linear backoff. Once the attempts run out the
// message is committed and the PDF is left to POST /payslips/:id/pdf.
func ConsumePayslipGenerated(
	ctx context.Context,
	reader MessageReader,
	generator PayslipPDFGenerator,
	logger *zap.Logger,
	cfg RetryConfig,
) {
	cfg = cfg.withDefaults()
	log := logger.Named("kafka.consumer.payslip_generated")
	log.Info("payslip generated consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip generated consumer stopped")
				return
			}
			log.Error("fetch payslip generated message failed", zap.Error(err))
			continue
		}

		var event events.PayslipGeneratedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.PayslipID == "" {
			log.Error("decode payslip_generated event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		path, err := renderWithRetry(ctx, generator, event, cfg, log)
		if ctx.Err() != nil {
			log.Info("payslip generated consumer stopped")
			return
		}
		if err != nil {
			if errors.Is(err, payrollerrors.ErrPayslipNotFound) {
				log.Warn("payslip no longer exists, skipping",
					zap.String("payslip_id", event.PayslipID),
				)
			} else {
				log.Error("render payslip pdf gave up",
					zap.String("payslip_id", event.PayslipID),
					zap.String("request_id", event.RequestID),
					zap.Int("attempts", cfg.MaxAttempts),
					zap.Error(err),
				)
			}
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip generated message failed", zap.Error(err))
			continue
		}

		log.Info("payslip pdf rendered",
			zap.String("payslip_id", event.PayslipID),
			zap.String("period", event.PeriodKey),
			zap.String("path", path),
		)
	}
}

func renderWithRetry(
	ctx context.Context,
	generator PayslipPDFGenerator,
	event events.PayslipGeneratedEvent,
	cfg RetryConfig,
	log *zap.Logger,
) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		path, err := generator.GeneratePDF(ctx, event.PayslipID)
		if err == nil || errors.Is(err, payrollerrors.ErrPayslipNotFound) {
			return path, err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		log.Warn("render payslip pdf failed, retrying",
			zap.String("payslip_id", event.PayslipID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		timer := time.NewTimer(time.Duration(attempt) * cfg.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "", lastErr
}
