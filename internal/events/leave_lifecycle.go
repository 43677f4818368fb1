package events

import "time"

const LeaveLifecycleTopic = "teamdesk.leave.lifecycle.v1"

const (
	LeaveApplied       = "leave_applied"
	LeaveStatusChanged = "leave_status_changed"
)

// LeaveAppliedEvent notifies the team leader of a new application.
type LeaveAppliedEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	ApplicantID string    `json:"applicant_id"`
	Applicant   string    `json:"applicant"`
	TeamID      string    `json:"team_id"`
	LeaderID    string    `json:"leader_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// LeaveStatusChangedEvent notifies the applicant of a decision.
type LeaveStatusChangedEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	ApplicantID string    `json:"applicant_id"`
	Status      int       `json:"status"`
	StatusLabel string    `json:"status_label"`
	DecidedBy   string    `json:"decided_by"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
