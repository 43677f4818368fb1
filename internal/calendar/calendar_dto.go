package calendar

import "time"

type CreateEventRequest struct {
	Title   string    `json:"title" binding:"required,max=100"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	TeamID  string    `json:"team_id" binding:"required,uuid"`
}

type UpdateEventRequest struct {
	Title   string    `json:"title" binding:"required,max=100"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
}

// ListFilter narrows a listing. UserID restricts to teams the user leads or
// belongs to; From and To bound start_at.
type ListFilter struct {
	TeamID string
	UserID string
	From   *time.Time
	To     *time.Time
}

type Actor struct {
	UserID  string
	IsStaff bool
}

type EventResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
	TeamID  string `json:"team_id"`
}
