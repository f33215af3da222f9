package payment

import "context"

// CreateIntentParams mengikat intent ke satu record payroll tertentu lewat
// metadata, supaya charge bisa diaudit balik ke record-nya.
type CreateIntentParams struct {
	Amount     int64
	PayrollID  string
	EmployeeID string
}

type Intent struct {
	ID           string
	ClientSecret string
}

// CaptureResult adalah hasil sinkron dari konfirmasi processor.
// Succeeded true hanya untuk status terminal "succeeded"; status lain
// (declined, requires_action, dll) dianggap gagal dan boleh di-retry.
type CaptureResult struct {
	TransactionID string
	Status        string
	Succeeded     bool
	Message       string
}

//go:generate mockgen -source=gateway.go -destination=mock/gateway_mock.go -package=mock
type Gateway interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (Intent, error)
	Confirm(ctx context.Context, intentID, paymentMethodID string) (CaptureResult, error)
}
