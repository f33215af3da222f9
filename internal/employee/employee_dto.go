package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Salary      int64  `json:"salary" binding:"required,gt=0"`
	BankAccount string `json:"bank_account"`
	PhotoURL    string `json:"photo_url"`
	HireDate    string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	BankAccount string `json:"bank_account"`
	PhotoURL    string `json:"photo_url"`
}

type UpdateSalaryRequest struct {
	Salary int64 `json:"salary" binding:"required,gt=0"`
}

type GetEmployeesFilterRequest struct {
	Verified *bool  `form:"verified"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE TERMINATED"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Designation      string `json:"designation,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Salary           int64  `json:"salary"`
	BankAccount      string `json:"bank_account,omitempty"`
	PhotoURL         string `json:"photo_url,omitempty"`
	IsVerified       bool   `json:"is_verified"`
	EmploymentStatus string `json:"employment_status"`
	HireDate         string `json:"hire_date"`
}

// EmployeeOption adalah bentuk ringkas untuk dropdown/select di UI.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
