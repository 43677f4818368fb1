package domain

// Choice is one value/label pair of an integer-backed enumeration.
type Choice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Choices lists every enumeration the store persists, keyed by field.
func Choices() map[string][]Choice {
	return map[string][]Choice{
		"user_role.role":            RoleChoices(),
		"leave_application.status":  LeaveStatusChoices(),
		"team_ticket.ticket_status": TicketStatusChoices(),
	}
}
