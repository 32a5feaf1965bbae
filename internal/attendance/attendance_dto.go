package attendance

type MonthlySummaryRequest struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Year       int    `form:"year" binding:"required,min=1,max=9999"`
}

type MonthlySummaryResponse struct {
	MonthlyStats
	AttendanceRate string `json:"attendance_rate"`
}
