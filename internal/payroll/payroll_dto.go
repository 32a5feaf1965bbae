package payroll

type ReportQuery struct {
	Month int `form:"month" json:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" json:"year" binding:"required,min=1,max=9999"`
}

type ReportRequestAccepted struct {
	RequestID string `json:"request_id"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Status    string `json:"status"`
}

const ReportRequestQueued = "QUEUED"
