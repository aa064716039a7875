package billing

import "time"

// WebhookEvent is the decoded body of a billing provider webhook call.
type WebhookEvent struct {
	EventID      string     `json:"event_id"`
	EventType    string     `json:"event_type"`
	CustomerID   string     `json:"customer_id"`
	Subscription string     `json:"subscription_id"`
	Plan         string     `json:"plan"`
	Status       string     `json:"status"`
	PeriodStart  *time.Time `json:"period_start"`
	PeriodEnd    *time.Time `json:"period_end"`
}
