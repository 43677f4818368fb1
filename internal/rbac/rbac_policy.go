package rbac

const (
	SubjectAdmin      = "admin"
	SubjectLeader     = "team_leader"
	SubjectMember     = "team_member"
	SubjectUnassigned = "unassigned"
)

// Resource names used by routes.
const (
	ResourceUser          = "user"
	ResourceUserRole      = "user_role"
	ResourceProfile       = "profile"
	ResourceTeam          = "team"
	ResourceLeave         = "leave"
	ResourceNotification  = "notification"
	ResourceCalendarEvent = "calendar_event"
	ResourceTicketType    = "ticket_type"
	ResourceTicket        = "ticket"
	ResourceDashboard     = "dashboard"
)

// Actions used by routes.
const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionRespond = "respond"
)

// Each role inherits the one listed after it.
var defaultGrouping = [][2]string{
	{SubjectLeader, SubjectMember},
	{SubjectMember, SubjectUnassigned},
}

var defaultPolicy = [][3]string{
	{SubjectAdmin, "*", "*"},

	{SubjectUnassigned, ResourceDashboard, ActionRead},
	{SubjectUnassigned, ResourceProfile, ActionRead},
	{SubjectUnassigned, ResourceProfile, ActionCreate},
	{SubjectUnassigned, ResourceProfile, ActionUpdate},
	{SubjectUnassigned, ResourceUserRole, ActionRead},
	{SubjectUnassigned, ResourceNotification, ActionRead},

	{SubjectMember, ResourceUser, ActionRead},
	{SubjectMember, ResourceTeam, ActionRead},
	{SubjectMember, ResourceLeave, ActionRead},
	{SubjectMember, ResourceLeave, ActionCreate},
	{SubjectMember, ResourceLeave, ActionUpdate},
	{SubjectMember, ResourceCalendarEvent, ActionRead},
	{SubjectMember, ResourceTicketType, ActionRead},
	{SubjectMember, ResourceTicket, ActionRead},
	{SubjectMember, ResourceTicket, ActionCreate},

	{SubjectLeader, ResourceLeave, ActionApprove},
	{SubjectLeader, ResourceTicket, ActionRespond},
	{SubjectLeader, ResourceTicket, ActionUpdate},
	{SubjectLeader, ResourceCalendarEvent, ActionCreate},
	{SubjectLeader, ResourceCalendarEvent, ActionUpdate},
	{SubjectLeader, ResourceCalendarEvent, ActionDelete},
	{SubjectLeader, ResourceNotification, ActionCreate},
}
