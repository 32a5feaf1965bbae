package events

import "time"

const (
	PayrollReportRequestedTopic = "hr.payroll.report.requested.v1"
	PayrollReportRequestedType  = "payroll.report.requested"
)

type PayrollReportRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
