package queue

import "time"

// CheckinResponseMessage carries one inbound mood reply from the webhook
// to the worker.
type CheckinResponseMessage struct {
	MessageID  string    `json:"message_id"`
	Phone      string    `json:"phone"`
	Text       string    `json:"text"`
	Channel    string    `json:"channel"`
	ReceivedAt time.Time `json:"received_at"`
}

// DispatchCompletedEvent is published after every dispatch run for
// downstream consumers (audit, analytics).
type DispatchCompletedEvent struct {
	EventID           string    `json:"event_id"`
	RanAt             time.Time `json:"ran_at"`
	Processed         int       `json:"processed"`
	RecipientFailures int       `json:"recipient_failures"`
	RecordFailures    int       `json:"record_failures"`
}

const (
	RoutingKeyCheckinResponse = "checkin.response"
	RoutingKeyDispatchDone    = "dispatch.completed"

	QueueCheckinResponses = "staffpulse.checkin.responses"
)
