package events

import "time"

const SettlementNotifyTopic = "settlement.notify.v1"

// SettlementNotifyEvent asks the consumer to build the employee's yearly
// settlement and hand it to the notifier. The engine never retries
// delivery; an unacknowledged message is simply redelivered.
type SettlementNotifyEvent struct {
	EventType   string    `json:"event_type"`
	EmployeeID  string    `json:"employee_id"`
	Year        int       `json:"year"`
	Email       string    `json:"email"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
