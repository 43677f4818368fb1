package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"go-teamdesk/internal/dashboard"
	"go-teamdesk/internal/leave"
	"go-teamdesk/internal/notification"
	"go-teamdesk/internal/profile"
	profileerrors "go-teamdesk/internal/profile/errors"
	"go-teamdesk/internal/team"
	"go-teamdesk/internal/ticket"
	"go-teamdesk/internal/userrole"
	userroleerrors "go-teamdesk/internal/userrole/errors"

	"github.com/stretchr/testify/assert"
)

type fakeProfiles struct {
	resp profile.ProfileResponse
	err  error
}

func (f fakeProfiles) GetByUserID(ctx context.Context, userID string) (profile.ProfileResponse, error) {
	return f.resp, f.err
}

type fakeRoles struct {
	resp userrole.UserRoleResponse
	err  error
}

func (f fakeRoles) GetByUserID(ctx context.Context, userID string) (userrole.UserRoleResponse, error) {
	return f.resp, f.err
}

type fakeTeams struct{ err error }

func (f fakeTeams) GetForUser(ctx context.Context, userID string) ([]team.TeamResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []team.TeamResponse{{ID: "t-1", TeamName: "Core"}}, nil
}

type fakeLeaves struct{ got *leave.ListFilter }

func (f fakeLeaves) GetAll(ctx context.Context, actor leave.Actor, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	*f.got = filter
	return []leave.LeaveResponse{{ID: "l-1"}}, nil
}

type fakeNotifications struct{}

func (fakeNotifications) GetForUser(ctx context.Context, userID string, limit int) ([]notification.NotificationResponse, error) {
	return []notification.NotificationResponse{{ID: "n-1", Message: "hi"}}, nil
}

type fakeTickets struct{ got *ticket.ListFilter }

func (f fakeTickets) GetAll(ctx context.Context, actor ticket.Actor, filter ticket.ListFilter) ([]ticket.TicketResponse, error) {
	*f.got = filter
	return nil, nil
}

func sources(p fakeProfiles, r fakeRoles, teams fakeTeams, lf *leave.ListFilter, tf *ticket.ListFilter) dashboard.Sources {
	return dashboard.Sources{
		Profiles:      p,
		Roles:         r,
		Teams:         teams,
		Leaves:        fakeLeaves{got: lf},
		Notifications: fakeNotifications{},
		Tickets:       fakeTickets{got: tf},
	}
}

func TestDashboardService_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("complete profile", func(t *testing.T) {
		var lf leave.ListFilter
		var tf ticket.ListFilter
		leader := 0
		svc := dashboard.NewService(sources(
			fakeProfiles{resp: profile.ProfileResponse{ID: "p-1"}},
			fakeRoles{resp: userrole.UserRoleResponse{Role: &leader, RoleLabel: "Team Leader"}},
			fakeTeams{}, &lf, &tf,
		))

		resp, err := svc.Build(ctx, "u-1", "alice")

		assert.NoError(t, err)
		assert.True(t, resp.ProfileComplete)
		assert.Equal(t, "Team Leader", resp.RoleLabel)
		assert.Len(t, resp.Teams, 1)
		assert.Len(t, resp.RecentLeaves, 1)
		assert.Len(t, resp.Notifications, 1)
		assert.NotNil(t, resp.OpenTickets)
		assert.Equal(t, 5, lf.Limit)
		assert.True(t, tf.OpenOnly)
	})

	t.Run("missing profile and role are not errors", func(t *testing.T) {
		var lf leave.ListFilter
		var tf ticket.ListFilter
		svc := dashboard.NewService(sources(
			fakeProfiles{err: profileerrors.ErrProfileNotFound},
			fakeRoles{err: userroleerrors.ErrUserRoleNotFound},
			fakeTeams{}, &lf, &tf,
		))

		resp, err := svc.Build(ctx, "u-1", "alice")

		assert.NoError(t, err)
		assert.False(t, resp.ProfileComplete)
		assert.Nil(t, resp.Profile)
		assert.Nil(t, resp.Role)
		assert.Equal(t, "Unassigned", resp.RoleLabel)
	})

	t.Run("section failure fails the page", func(t *testing.T) {
		var lf leave.ListFilter
		var tf ticket.ListFilter
		svc := dashboard.NewService(sources(
			fakeProfiles{}, fakeRoles{}, fakeTeams{err: errors.New("db down")}, &lf, &tf,
		))

		_, err := svc.Build(ctx, "u-1", "alice")

		assert.EqualError(t, err, "db down")
	})
}
