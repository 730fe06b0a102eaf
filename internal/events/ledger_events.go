package events

import "time"

const LedgerPaymentTopic = "payroll.ledger.payment.v1"

const (
	EventPaymentCreated = "payment_created"
	EventPaymentUpdated = "payment_updated"
	// EventPaymentReduced is emitted when a debt lowers a pending payment of the same month.
	EventPaymentReduced = "payment_reduced"
)

type LedgerPaymentEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PaymentID  string    `json:"payment_id"`
	EmployeeID string    `json:"employee_id"`
	PeriodKey  string    `json:"period_key"`
	Amount     string    `json:"amount"`
	Status     string    `json:"status"`
	DebtID     string    `json:"debt_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
