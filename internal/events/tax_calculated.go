package events

import "time"

const (
	TaxCalculatedTopic     = "hr.tax.calculated.v1"
	TaxCalculatedEventType = "tax.calculated"
)

type TaxCalculatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	TaxYear    int       `json:"tax_year"`
	OccurredAt time.Time `json:"occurred_at"`
}
