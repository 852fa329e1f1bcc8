package events

import "time"

const (
	SalaryPostedTopic     = "hr.salary.posted.v1"
	SalaryPostedEventType = "salary.posted"
)

// SalaryPostedEvent announces that a payroll batch has been persisted for a
// period. Consumers use it to invalidate derived aggregates.
type SalaryPostedEvent struct {
	EventType  string    `json:"event_type"`
	BatchNo    string    `json:"batch_no"`
	CompanyID  string    `json:"company_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	RowCount   int       `json:"row_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
