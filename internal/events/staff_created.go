package events

import "time"

const StaffCreatedTopic = "college.staff.lifecycle.v1"

// StaffCreatedEvent is published through the outbox whenever a staff record
// is created. The balance consumer seeds default leave entitlements from it.
type StaffCreatedEvent struct {
	EventType string    `json:"event_type"`
	RequestID string    `json:"request_id,omitempty"`
	StaffID   string    `json:"staff_id"`
	UserType  string    `json:"user_type"`
	JoinedAt  time.Time `json:"joined_at"`
}
