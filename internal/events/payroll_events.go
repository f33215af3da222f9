package events

import "time"

const (
	PayrollRequestedTopic = "payroll.requested"
	PayrollApprovedTopic  = "payroll.approved"
	PayrollRejectedTopic  = "payroll.rejected"
)

// PayrollStatusEvent diterbitkan lewat outbox setiap kali record payroll
// dibuat atau berpindah status. Payload membawa snapshot lengkap supaya
// consumer tidak perlu query balik ke API.
type PayrollStatusEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	PayrollID     string    `json:"payroll_id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeEmail string    `json:"employee_email"`
	Amount        int64     `json:"amount"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
