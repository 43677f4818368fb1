package ticket

import "time"

type CreateTicketRequest struct {
	TicketNumber string     `json:"ticket_number" binding:"max=10"`
	TicketTypeID string     `json:"ticket_type_id" binding:"required,uuid"`
	IssueDetail  string     `json:"issue_detail" binding:"required"`
	IssueDate    *time.Time `json:"issue_date"`
	TeamID       string     `json:"team_id" binding:"required,uuid"`
	// RaisedBy defaults to the caller; only staff may set it.
	RaisedBy string `json:"raised_by" binding:"omitempty,uuid"`
}

// UpdateTicketRequest is the generic edit. Every supplied value, including
// ticket_status, is written as given.
type UpdateTicketRequest struct {
	TicketNumber string     `json:"ticket_number" binding:"max=10"`
	TicketTypeID string     `json:"ticket_type_id" binding:"required,uuid"`
	IssueDetail  string     `json:"issue_detail" binding:"required"`
	IssueDate    *time.Time `json:"issue_date"`
	ResponseDate *time.Time `json:"response_date"`
	ResponseBy   *string    `json:"response_by" binding:"omitempty,uuid"`
	Comments     *string    `json:"comments"`
	TicketStatus *int       `json:"ticket_status"`
	ClosedDate   *time.Time `json:"closed_date"`
	ClosedBy     *string    `json:"closed_by" binding:"omitempty,uuid"`
}

// TransitionRequest carries the optional fields a workflow step stamps.
type TransitionRequest struct {
	Comments     *string    `json:"comments"`
	ResponseDate *time.Time `json:"response_date"`
	ResponseBy   *string    `json:"response_by" binding:"omitempty,uuid"`
	ClosedDate   *time.Time `json:"closed_date"`
	ClosedBy     *string    `json:"closed_by" binding:"omitempty,uuid"`
}

type ListFilter struct {
	TeamID   string
	RaisedBy string
	// UserID limits to tickets raised by the user or belonging to teams the
	// user leads or is a member of.
	UserID   string
	Status   *int
	OpenOnly bool
	Limit    int
}

type Actor struct {
	UserID  string
	IsStaff bool
}

type TicketResponse struct {
	ID             string  `json:"id"`
	TicketNumber   string  `json:"ticket_number"`
	TicketTypeID   string  `json:"ticket_type_id"`
	TicketTypeName string  `json:"ticket_type_name,omitempty"`
	RaisedDate     string  `json:"raised_date,omitempty"`
	RaisedBy       string  `json:"raised_by"`
	RaisedByName   string  `json:"raised_by_name,omitempty"`
	IssueDetail    string  `json:"issue_detail"`
	IssueDate      *string `json:"issue_date"`
	ResponseDate   *string `json:"response_date"`
	ResponseBy     *string `json:"response_by"`
	Comments       string  `json:"comments"`
	TicketStatus   int     `json:"ticket_status"`
	StatusLabel    string  `json:"status_label"`
	ClosedDate     *string `json:"closed_date"`
	ClosedBy       *string `json:"closed_by"`
	TeamID         string  `json:"team_id"`
	Display        string  `json:"display"`
}
