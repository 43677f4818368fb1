package dashboard

import (
	"go-teamdesk/internal/leave"
	"go-teamdesk/internal/notification"
	"go-teamdesk/internal/profile"
	"go-teamdesk/internal/team"
	"go-teamdesk/internal/ticket"
)

type Response struct {
	Username        string                              `json:"username"`
	ProfileComplete bool                                `json:"profile_complete"`
	Profile         *profile.ProfileResponse            `json:"profile"`
	Role            *int                                `json:"role"`
	RoleLabel       string                              `json:"role_label"`
	Teams           []team.TeamResponse                 `json:"teams"`
	RecentLeaves    []leave.LeaveResponse               `json:"recent_leaves"`
	Notifications   []notification.NotificationResponse `json:"notifications"`
	OpenTickets     []ticket.TicketResponse             `json:"open_tickets"`
}
