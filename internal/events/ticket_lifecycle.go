package events

import "time"

const TicketLifecycleTopic = "teamdesk.ticket.lifecycle.v1"

const (
	TicketRaised        = "ticket_raised"
	TicketStatusChanged = "ticket_status_changed"
)

type TicketRaisedEvent struct {
	EventType    string    `json:"event_type"`
	TicketID     string    `json:"ticket_id"`
	TicketNumber string    `json:"ticket_number"`
	TicketType   string    `json:"ticket_type"`
	RaisedBy     string    `json:"raised_by"`
	TeamID       string    `json:"team_id"`
	LeaderID     string    `json:"leader_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type TicketStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	TicketID     string    `json:"ticket_id"`
	TicketNumber string    `json:"ticket_number"`
	RaisedBy     string    `json:"raised_by"`
	Status       int       `json:"status"`
	StatusLabel  string    `json:"status_label"`
	ChangedBy    string    `json:"changed_by"`
	Comments     string    `json:"comments,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
