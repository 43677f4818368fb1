package leave

// CreateLeaveRequest files an application. UserID defaults to the caller and
// may only name someone else when the caller is staff.
type CreateLeaveRequest struct {
	UserID    string `json:"user_id" binding:"omitempty,uuid"`
	TeamID    string `json:"team_id" binding:"omitempty,uuid"`
	Reason    string `json:"reason" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type UpdateLeaveRequest struct {
	TeamID    string `json:"team_id" binding:"omitempty,uuid"`
	Reason    string `json:"reason" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Status    *int   `json:"status"`
}

type ListFilter struct {
	UserID string
	TeamID string
	Status *int
	Limit  int
}

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	UserID  string
	IsStaff bool
}

type LeaveResponse struct {
	ID          string  `json:"id"`
	UserID      *string `json:"user_id"`
	Username    string  `json:"username,omitempty"`
	TeamID      *string `json:"team_id"`
	Reason      string  `json:"reason"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        int     `json:"days"`
	Status      int     `json:"status"`
	StatusLabel string  `json:"status_label"`
	AppliedDate string  `json:"applied_date"`
	Display     string  `json:"display"`
}
