package worklog

type CreateWorkLogRequest struct {
	Task     string `json:"task" binding:"required"`
	Hours    int    `json:"hours" binding:"required"`
	WorkDate string `json:"work_date" binding:"required"`
}

type WorkLogResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Task       string `json:"task"`
	Hours      int    `json:"hours"`
	WorkDate   string `json:"work_date"`
}
