package events

import "time"

const (
	PayslipGeneratedTopic = "payroll.payslip.generated.v1"
	PayslipPaidTopic      = "payroll.payslip.paid.v1"
)

const (
	EventPayslipGenerated = "payslip_generated"
	EventPayslipPaid      = "payslip_paid"
)

type PayslipGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PayslipID  string    `json:"payslip_id"`
	EmployeeID string    `json:"employee_id"`
	PeriodKey  string    `json:"period_key"`
	Gross      string    `json:"gross"`
	Net        string    `json:"net"`
	Warnings   []string  `json:"warnings,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PayslipPaidEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	PayslipID     string    `json:"payslip_id"`
	EmployeeID    string    `json:"employee_id"`
	PaymentMethod string    `json:"payment_method"`
	PaidAt        time.Time `json:"paid_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}
