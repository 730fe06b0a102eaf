package ledger

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"go-payroll/internal/events"
	ledgererrors "go-payroll/internal/ledger/errors"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/paycalc"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/dbutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// sqliteActivePaymentColumns is how SQLite names the partial unique index in its error text.
const sqliteActivePaymentColumns = "payments.employee_id, payments.period_key"

type Service interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	UpdatePayment(ctx context.Context, id string, req UpdatePaymentRequest) (PaymentResponse, error)
	GetPayments(ctx context.Context, req ListPaymentsRequest) ([]PaymentResponse, error)
	GetPaymentByID(ctx context.Context, id string) (PaymentResponse, error)
	DeletePayment(ctx context.Context, id string) error
	CreateDebt(ctx context.Context, req CreateDebtRequest) (DebtResponse, error)
	GetDebts(ctx context.Context, req ListDebtsRequest) ([]DebtResponse, error)
	DeleteDebt(ctx context.Context, id string) error
	PaymentsReportPDF(ctx context.Context, req ListPaymentsRequest) ([]byte, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	renderer ReportRenderer
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	renderer ReportRenderer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		renderer: renderer,
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PaymentResponse{}, ledgererrors.ErrInvalidEmployeeID
	}
	date, err := parseDate(req.PaymentDate)
	if err != nil {
		return PaymentResponse{}, err
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = StatusPending
	}

	payment := &Payment{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		PaymentDate: date,
		PeriodKey:   paycalc.PeriodOf(date).Key(),
		Status:      status,
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if err := payment.Validate(); err != nil {
		return PaymentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create payment begin tx failed", zap.Error(err))
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.LockEmployee(ctx, req.EmployeeID); err != nil {
		return PaymentResponse{}, mapEmployeeError(err)
	}

	if payment.Active() {
		guard := NewConsistencyGuard(qtx, log)
		if err := guard.BeforeCreatePayment(ctx, req.EmployeeID, date); err != nil {
			return PaymentResponse{}, err
		}
	}

	if err := qtx.CreatePayment(ctx, payment); err != nil {
		log.Error("create payment persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return PaymentResponse{}, mapPaymentError(err)
	}

	if err := s.queuePaymentEvent(ctx, tx, events.EventPaymentCreated, payment, ""); err != nil {
		log.Error("create payment outbox persist failed", zap.String("payment_id", payment.ID.String()), zap.Error(err))
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create payment commit failed", zap.Error(err))
		return PaymentResponse{}, mapPaymentError(err)
	}

	log.Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", payment.PeriodKey),
		zap.String("status", payment.Status),
	)
	return mapPaymentToResponse(*payment), nil
}

// UpdatePayment applies a partial update. Moving the payment to another month or
// reactivating it re-runs the duplicate check against the other payments of the employee.
func (s *service) UpdatePayment(ctx context.Context, id string, req UpdatePaymentRequest) (PaymentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return PaymentResponse{}, ledgererrors.ErrInvalidPaymentID
	}
	patch, err := req.toPatch()
	if err != nil {
		return PaymentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payment, err := qtx.FindPaymentByID(ctx, id)
	if err != nil {
		return PaymentResponse{}, mapPaymentError(err)
	}
	if _, err := qtx.LockEmployee(ctx, payment.EmployeeID.String()); err != nil {
		return PaymentResponse{}, mapEmployeeError(err)
	}

	if err := patch.Apply(payment); err != nil {
		return PaymentResponse{}, err
	}

	if patch.movesActivePayment() && payment.Active() {
		guard := NewConsistencyGuard(qtx, log)
		if err := guard.BeforeUpdatePayment(ctx, id, payment.EmployeeID.String(), payment.PaymentDate); err != nil {
			return PaymentResponse{}, err
		}
	}

	if err := qtx.UpdatePayment(ctx, payment); err != nil {
		log.Error("update payment persist failed", zap.String("payment_id", id), zap.Error(err))
		return PaymentResponse{}, mapPaymentError(err)
	}

	if err := s.queuePaymentEvent(ctx, tx, events.EventPaymentUpdated, payment, ""); err != nil {
		log.Error("update payment outbox persist failed", zap.String("payment_id", id), zap.Error(err))
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PaymentResponse{}, mapPaymentError(err)
	}

	log.Info("payment updated",
		zap.String("payment_id", id),
		zap.String("period", payment.PeriodKey),
		zap.String("status", payment.Status),
	)
	return mapPaymentToResponse(*payment), nil
}

func (s *service) GetPayments(ctx context.Context, req ListPaymentsRequest) ([]PaymentResponse, error) {
	payments, err := s.repo.FindPayments(ctx, req.filter())
	if err != nil {
		return nil, err
	}

	res := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = mapPaymentToResponse(p)
	}
	return res, nil
}

func (s *service) GetPaymentByID(ctx context.Context, id string) (PaymentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PaymentResponse{}, ledgererrors.ErrInvalidPaymentID
	}

	payment, err := s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		return PaymentResponse{}, mapPaymentError(err)
	}
	return mapPaymentToResponse(*payment), nil
}

func (s *service) DeletePayment(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ledgererrors.ErrInvalidPaymentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeletePayment(ctx, id); err != nil {
		return mapPaymentError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("payment deleted", zap.String("payment_id", id))
	return nil
}

// CreateDebt records a debt and, when the month already holds a pending payment,
// lowers that payment in the same transaction.
func (s *service) CreateDebt(ctx context.Context, req CreateDebtRequest) (DebtResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DebtResponse{}, ledgererrors.ErrInvalidEmployeeID
	}
	date := s.now().UTC().Truncate(24 * time.Hour)
	if strings.TrimSpace(req.DebtDate) != "" {
		if date, err = parseDate(req.DebtDate); err != nil {
			return DebtResponse{}, err
		}
	}
	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount.IsNegative() {
		return DebtResponse{}, ledgererrors.ErrInvalidAmount
	}

	debt := &Debt{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Amount:     amount,
		DebtDate:   date,
		PeriodKey:  paycalc.PeriodOf(date).Key(),
		Reason:     strings.TrimSpace(req.Reason),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create debt begin tx failed", zap.Error(err))
		return DebtResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.LockEmployee(ctx, req.EmployeeID); err != nil {
		return DebtResponse{}, mapEmployeeError(err)
	}

	action, err := NewConsistencyGuard(qtx, log).BeforeCreateDebt(ctx, req.EmployeeID, amount, date)
	if err != nil {
		return DebtResponse{}, err
	}

	var reduced *Payment
	if action.Kind == ReduceExistingPayment {
		if err := qtx.UpdatePaymentAmount(ctx, action.Payment.ID.String(), action.NewAmount); err != nil {
			log.Error("create debt reduce payment failed",
				zap.String("payment_id", action.Payment.ID.String()),
				zap.Error(err),
			)
			return DebtResponse{}, err
		}
		reduced = action.Payment
		reduced.Amount = action.NewAmount
		debt.PaymentID = &reduced.ID
	}

	if err := qtx.CreateDebt(ctx, debt); err != nil {
		log.Error("create debt persist failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return DebtResponse{}, err
	}

	if reduced != nil {
		if err := s.queuePaymentEvent(ctx, tx, events.EventPaymentReduced, reduced, debt.ID.String()); err != nil {
			return DebtResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create debt commit failed", zap.Error(err))
		return DebtResponse{}, err
	}

	fields := []zap.Field{
		zap.String("debt_id", debt.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", debt.PeriodKey),
	}
	if reduced != nil {
		fields = append(fields,
			zap.String("payment_id", reduced.ID.String()),
			zap.String("new_amount", reduced.Amount.StringFixed(2)),
		)
	}
	log.Info("debt created", fields...)

	resp := mapDebtToResponse(*debt)
	if reduced != nil {
		p := mapPaymentToResponse(*reduced)
		resp.ReducedPayment = &p
	}
	return resp, nil
}

func (s *service) GetDebts(ctx context.Context, req ListDebtsRequest) ([]DebtResponse, error) {
	debts, err := s.repo.FindDebts(ctx, DebtFilter{EmployeeID: req.EmployeeID, PeriodKey: req.Period})
	if err != nil {
		return nil, err
	}

	res := make([]DebtResponse, len(debts))
	for i, d := range debts {
		res[i] = mapDebtToResponse(d)
	}
	return res, nil
}

// DeleteDebt removes the debt only; a payment it reduced keeps its lowered amount.
func (s *service) DeleteDebt(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ledgererrors.ErrInvalidDebtID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).DeleteDebt(ctx, id); err != nil {
		if dbutil.IsNotFound(err) {
			return ledgererrors.ErrDebtNotFound
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("debt deleted", zap.String("debt_id", id))
	return nil
}

func (s *service) PaymentsReportPDF(ctx context.Context, req ListPaymentsRequest) ([]byte, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	payments, err := s.repo.FindPayments(ctx, req.filter())
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(payments))
	seen := make(map[uuid.UUID]struct{}, len(payments))
	for _, p := range payments {
		if _, ok := seen[p.EmployeeID]; ok {
			continue
		}
		seen[p.EmployeeID] = struct{}{}
		ids = append(ids, p.EmployeeID.String())
	}
	sort.Strings(ids)

	employees, err := s.repo.FindEmployees(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]LedgerEmployee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	rows := make([]PaymentReportRow, len(payments))
	for i, p := range payments {
		rows[i] = PaymentReportRow{Payment: p}
		if e, ok := byID[p.EmployeeID]; ok {
			rows[i].Employee = &e
		}
	}

	data, err := s.renderer.RenderPayments(PaymentsReport{
		Title:       "Payments Report",
		GeneratedAt: s.now().UTC(),
		Rows:        rows,
	})
	if err != nil {
		log.Error("render payments report failed", zap.Error(err))
		return nil, ledgererrors.ErrReportGenerationFailed.WithCause(err)
	}
	return data, nil
}

func (s *service) queuePaymentEvent(ctx context.Context, tx *sql.Tx, eventType string, payment *Payment, debtID string) error {
	if s.outbox == nil {
		return nil
	}

	requestID := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(
		requestID,
		"payment",
		payment.ID.String(),
		eventType,
		events.LedgerPaymentTopic,
		events.LedgerPaymentEvent{
			EventType:  eventType,
			RequestID:  requestID,
			PaymentID:  payment.ID.String(),
			EmployeeID: payment.EmployeeID.String(),
			PeriodKey:  payment.PeriodKey,
			Amount:     payment.Amount.StringFixed(2),
			Status:     payment.Status,
			DebtID:     debtID,
			OccurredAt: s.now().UTC(),
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (r ListPaymentsRequest) filter() PaymentFilter {
	return PaymentFilter{
		EmployeeID: r.EmployeeID,
		PeriodKey:  r.Period,
		Status:     r.Status,
	}
}

func (r UpdatePaymentRequest) toPatch() (PaymentPatch, error) {
	patch := PaymentPatch{Amount: r.Amount, Status: r.Status}
	if r.PaymentDate != nil {
		d, err := parseDate(*r.PaymentDate)
		if err != nil {
			return PaymentPatch{}, err
		}
		patch.PaymentDate = &d
	}
	return patch, nil
}

func mapPaymentError(err error) error {
	switch {
	case dbutil.IsNotFound(err):
		return ledgererrors.ErrPaymentNotFound
	case dbutil.IsUniqueViolation(err, ActivePaymentConstraint),
		dbutil.IsUniqueViolation(err, sqliteActivePaymentColumns):
		return ledgererrors.ErrDuplicateActivePayment
	default:
		return err
	}
}

func mapEmployeeError(err error) error {
	if dbutil.IsNotFound(err) {
		return ledgererrors.ErrEmployeeNotFound
	}
	return err
}

func mapPaymentToResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(dateLayout),
		PeriodKey:   p.PeriodKey,
		Status:      p.Status,
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapDebtToResponse(d Debt) DebtResponse {
	resp := DebtResponse{
		ID:         d.ID.String(),
		EmployeeID: d.EmployeeID.String(),
		Amount:     d.Amount,
		DebtDate:   d.DebtDate.Format(dateLayout),
		PeriodKey:  d.PeriodKey,
		Reason:     d.Reason,
	}
	if d.PaymentID != nil {
		resp.PaymentID = d.PaymentID.String()
	}
	if !d.CreatedAt.IsZero() {
		resp.CreatedAt = d.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
