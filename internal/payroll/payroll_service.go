package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/paycalc"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/dbutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)
	GetAll(ctx context.Context, req ListPayslipsRequest) ([]PayslipResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	GetBreakdown(ctx context.Context, id string) (Breakdown, error)
	MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (PayslipResponse, error)
	GeneratePDF(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	builder  *PayslipBuilder
	outbox   kafka.OutboxRepository
	renderer Renderer
	store    *FileStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	builder *PayslipBuilder,
	outboxRepo kafka.OutboxRepository,
	renderer Renderer,
	store *FileStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		builder:  builder,
		outbox:   outboxRepo,
		renderer: renderer,
		store:    store,
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	period := paycalc.Period{Year: req.Year, Month: req.Month}

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("generate payslip begin tx failed", zap.Error(err))
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payslip, breakdown, err := s.builder.Build(ctx, qtx, req.EmployeeID, period, req.ElementIDs)
	if err != nil {
		return PayslipResponse{}, err
	}

	if err := qtx.Create(ctx, payslip); err != nil {
		log.Error("generate payslip persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("period", period.Key()),
			zap.Error(err),
		)
		return PayslipResponse{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"payslip",
			payslip.ID.String(),
			events.EventPayslipGenerated,
			events.PayslipGeneratedTopic,
			events.PayslipGeneratedEvent{
				EventType:  events.EventPayslipGenerated,
				RequestID:  contextutil.GetRequestID(ctx),
				PayslipID:  payslip.ID.String(),
				EmployeeID: req.EmployeeID,
				PeriodKey:  payslip.PeriodKey,
				Gross:      payslip.Gross.StringFixed(2),
				Net:        payslip.Net.StringFixed(2),
				Warnings:   breakdown.Warnings,
				OccurredAt: s.now().UTC(),
			},
		)
		if err != nil {
			return PayslipResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			log.Error("generate payslip outbox persist failed",
				zap.String("payslip_id", payslip.ID.String()),
				zap.Error(err),
			)
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("generate payslip commit failed", zap.Error(err))
		return PayslipResponse{}, err
	}

	log.Info("payslip generated",
		zap.String("payslip_id", payslip.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", payslip.PeriodKey),
		zap.String("net", payslip.Net.StringFixed(2)),
	)

	resp := mapToResponse(*payslip)
	resp.Warnings = breakdown.Warnings
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, req ListPayslipsRequest) ([]PayslipResponse, error) {
	payslips, err := s.repo.FindAll(ctx, PayslipFilter{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]PayslipResponse, len(payslips))
	for i, p := range payslips {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	payslip, err := s.find(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*payslip), nil
}

func (s *service) GetBreakdown(ctx context.Context, id string) (Breakdown, error) {
	payslip, err := s.find(ctx, id)
	if err != nil {
		return Breakdown{}, err
	}
	return breakdownOf(payslip), nil
}

// MarkPaid moves a pending payslip to PAID. Any other starting state is rejected.
func (s *service) MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (PayslipResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidPayslipID
	}

	paidAt := s.now().UTC()
	if req.PaidAt != nil && *req.PaidAt != "" {
		t, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return PayslipResponse{}, payrollerrors.ErrInvalidPaidAt
		}
		paidAt = t.UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payslip, err := qtx.LockByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}

	if payslip.Status != StatusPending {
		log.Info("mark paid rejected",
			zap.String("payslip_id", id),
			zap.String("status", payslip.Status),
		)
		return PayslipResponse{}, payrollerrors.ErrInvalidTransition
	}

	if err := qtx.UpdatePayment(ctx, id, req.PaymentMethod, paidAt); err != nil {
		log.Error("mark paid persist failed", zap.String("payslip_id", id), zap.Error(err))
		return PayslipResponse{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"payslip",
			id,
			events.EventPayslipPaid,
			events.PayslipPaidTopic,
			events.PayslipPaidEvent{
				EventType:     events.EventPayslipPaid,
				RequestID:     contextutil.GetRequestID(ctx),
				PayslipID:     id,
				EmployeeID:    payslip.EmployeeID.String(),
				PaymentMethod: req.PaymentMethod,
				PaidAt:        paidAt,
				OccurredAt:    s.now().UTC(),
			},
		)
		if err != nil {
			return PayslipResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	method := req.PaymentMethod
	payslip.Status = StatusPaid
	payslip.PaymentMethod = &method
	payslip.PaidAt = &paidAt

	log.Info("payslip marked paid",
		zap.String("payslip_id", id),
		zap.String("payment_method", method),
	)
	return mapToResponse(*payslip), nil
}

// GeneratePDF renders the stored payslip and records where the file was written.
func (s *service) GeneratePDF(ctx context.Context, id string) (string, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	payslip, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}

	employee, err := s.repo.FindEmployee(ctx, payslip.EmployeeID.String())
	if err != nil {
		if !dbutil.IsNotFound(err) {
			return "", err
		}
		employee = nil
	}

	data, err := s.renderer.Render(PayslipDocument{Payslip: payslip, Employee: employee})
	if err != nil {
		log.Error("render payslip pdf failed", zap.String("payslip_id", id), zap.Error(err))
		return "", payrollerrors.ErrPDFGenerationFailed.WithCause(err)
	}

	path, err := s.store.Save(payslipFileName(payslip), data)
	if err != nil {
		log.Error("store payslip pdf failed", zap.String("payslip_id", id), zap.Error(err))
		return "", payrollerrors.ErrPDFGenerationFailed.WithCause(err)
	}

	if err := s.repo.UpdatePDFPath(ctx, id, path); err != nil {
		return "", err
	}

	log.Info("payslip pdf generated", zap.String("payslip_id", id), zap.String("path", path))
	return path, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidPayslipID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func (s *service) find(ctx context.Context, id string) (*Payslip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidPayslipID
	}
	payslip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return payslip, nil
}

func mapRepositoryError(err error) error {
	if dbutil.IsNotFound(err) {
		return payrollerrors.ErrPayslipNotFound
	}
	return err
}

func mapLines(lines []PayslipLine) []PayslipLineResponse {
	resp := make([]PayslipLineResponse, len(lines))
	for i, l := range lines {
		resp[i] = PayslipLineResponse{
			Kind:        l.Kind,
			Position:    l.Position,
			Amount:      l.Amount,
			Description: l.Description,
		}
		if l.ElementID != nil {
			resp[i].ElementID = l.ElementID.String()
		}
	}
	return resp
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:              p.ID.String(),
		EmployeeID:      p.EmployeeID.String(),
		Month:           p.Month,
		Year:            p.Year,
		PeriodKey:       p.PeriodKey,
		BaseSalary:      p.BaseSalary,
		TotalGains:      p.TotalGains,
		Gross:           p.Gross,
		Contribution:    p.Contribution,
		Tax:             p.Tax,
		TotalDeductions: p.TotalDeductions,
		Net:             p.Net,
		Zone:            p.Zone,
		Status:          p.Status,
		PaymentMethod:   p.PaymentMethod,
		PDFPath:         p.PDFPath,
		GeneratedAt:     p.GeneratedAt.Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if len(p.Lines) > 0 {
		resp.Lines = mapLines(p.Lines)
	}
	return resp
}
