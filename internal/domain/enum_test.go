package domain_test

import (
	"testing"

	"go-teamdesk/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRole_ChoicesAndLabels(t *testing.T) {
	assert.Equal(t, []domain.Choice{
		{Value: 0, Label: "Team Leader"},
		{Value: 1, Label: "Team Member"},
	}, domain.RoleChoices())

	assert.Equal(t, "Unassigned", domain.RoleUnassigned.Label())
	assert.False(t, domain.RoleUnassigned.Valid())
	assert.Nil(t, domain.RoleUnassigned.IntPtr())
	assert.Equal(t, 1, *domain.RoleTeamMember.IntPtr())
}

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole(0)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleTeamLeader, r)

	// 2 is out of range and never accepted as input.
	_, err = domain.ParseRole(2)
	assert.Error(t, err)

	_, err = domain.ParseRole(-1)
	assert.Error(t, err)

	_, err = domain.ParseRole(65536)
	assert.Error(t, err)
}

func TestRole_ValueAndScan(t *testing.T) {
	v, err := domain.RoleUnassigned.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = domain.RoleTeamLeader.Value()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), v)

	var r domain.Role
	assert.NoError(t, r.Scan(nil))
	assert.Equal(t, domain.RoleUnassigned, r)

	assert.NoError(t, r.Scan(int64(1)))
	assert.Equal(t, domain.RoleTeamMember, r)

	assert.NoError(t, r.Scan([]byte("0")))
	assert.Equal(t, domain.RoleTeamLeader, r)

	assert.NoError(t, r.Scan(int64(2)))
	assert.Equal(t, domain.RoleUnassigned, r)

	assert.Error(t, r.Scan("leader"))
}

func TestRole_Subject(t *testing.T) {
	assert.Equal(t, "team_leader", domain.RoleTeamLeader.Subject())
	assert.Equal(t, "team_member", domain.RoleTeamMember.Subject())
	assert.Equal(t, "unassigned", domain.RoleUnassigned.Subject())
}

func TestLeaveStatus(t *testing.T) {
	assert.Equal(t, []domain.Choice{
		{Value: 1, Label: "Pending"},
		{Value: 2, Label: "Approved"},
		{Value: 3, Label: "Rejected"},
	}, domain.LeaveStatusChoices())

	_, err := domain.ParseLeaveStatus(0)
	assert.Error(t, err)

	tests := []struct {
		from, to domain.LeaveStatus
		allowed  bool
	}{
		{domain.LeaveStatusPending, domain.LeaveStatusApproved, true},
		{domain.LeaveStatusPending, domain.LeaveStatusRejected, true},
		{domain.LeaveStatusPending, domain.LeaveStatusPending, true},
		{domain.LeaveStatusApproved, domain.LeaveStatusRejected, false},
		{domain.LeaveStatusApproved, domain.LeaveStatusApproved, false},
		{domain.LeaveStatusRejected, domain.LeaveStatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
	assert.True(t, domain.LeaveStatusApproved.Terminal())
	assert.False(t, domain.LeaveStatusPending.Terminal())
}

func TestTicketStatus(t *testing.T) {
	assert.Equal(t, []domain.Choice{
		{Value: 0, Label: "raised"},
		{Value: 1, Label: "processing"},
		{Value: 2, Label: "rejected"},
		{Value: 3, Label: "closed"},
		{Value: 4, Label: "Deleted"},
	}, domain.TicketStatusChoices())

	_, err := domain.ParseTicketStatus(5)
	assert.Error(t, err)

	tests := []struct {
		from, to domain.TicketStatus
		allowed  bool
	}{
		{domain.TicketStatusRaised, domain.TicketStatusProcessing, true},
		{domain.TicketStatusRaised, domain.TicketStatusClosed, false},
		{domain.TicketStatusProcessing, domain.TicketStatusClosed, true},
		{domain.TicketStatusProcessing, domain.TicketStatusRejected, true},
		{domain.TicketStatusClosed, domain.TicketStatusProcessing, false},
		{domain.TicketStatusClosed, domain.TicketStatusDeleted, true},
		{domain.TicketStatusRaised, domain.TicketStatusDeleted, true},
		{domain.TicketStatusDeleted, domain.TicketStatusDeleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestChoices(t *testing.T) {
	c := domain.Choices()
	assert.Len(t, c, 3)
	assert.Len(t, c["team_ticket.ticket_status"], 5)
}
