package payroll

type CreatePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"required"`
	Year       int    `json:"year" binding:"required"`
}

type ApprovePayrollRequest struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
}

type GetPayrollsFilterRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

type PayrollResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	EmployeeEmail string  `json:"employee_email"`
	Amount        int64   `json:"amount"`
	Month         string  `json:"month"`
	Year          int     `json:"year"`
	Status        string  `json:"status"`
	RequestedBy   string  `json:"requested_by"`
	PaymentDate   *string `json:"payment_date,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
