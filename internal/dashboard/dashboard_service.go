package dashboard

import (
	"context"
	"errors"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/leave"
	"go-teamdesk/internal/notification"
	"go-teamdesk/internal/profile"
	profileerrors "go-teamdesk/internal/profile/errors"
	"go-teamdesk/internal/team"
	"go-teamdesk/internal/ticket"
	"go-teamdesk/internal/userrole"
	userroleerrors "go-teamdesk/internal/userrole/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentLeaves        = 5
	recentNotifications = 10
	openTickets         = 10
)

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID string) (profile.ProfileResponse, error)
}

type RoleReader interface {
	GetByUserID(ctx context.Context, userID string) (userrole.UserRoleResponse, error)
}

type TeamReader interface {
	GetForUser(ctx context.Context, userID string) ([]team.TeamResponse, error)
}

type LeaveReader interface {
	GetAll(ctx context.Context, actor leave.Actor, filter leave.ListFilter) ([]leave.LeaveResponse, error)
}

type NotificationReader interface {
	GetForUser(ctx context.Context, userID string, limit int) ([]notification.NotificationResponse, error)
}

type TicketReader interface {
	GetAll(ctx context.Context, actor ticket.Actor, filter ticket.ListFilter) ([]ticket.TicketResponse, error)
}

type Sources struct {
	Profiles      ProfileReader
	Roles         RoleReader
	Teams         TeamReader
	Leaves        LeaveReader
	Notifications NotificationReader
	Tickets       TicketReader
}

type Service interface {
	Build(ctx context.Context, userID, username string) (Response, error)
}

type service struct {
	src    Sources
	logger *zap.Logger
}

func NewService(src Sources, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{src: src, logger: l}
}

// Build gathers the caller's home page. Sections load concurrently; a
// missing profile or role record is reported as absent, not as an error.
func (s *service) Build(ctx context.Context, userID, username string) (Response, error) {
	resp := Response{
		Username:      username,
		RoleLabel:     domain.RoleUnassigned.Label(),
		Teams:         []team.TeamResponse{},
		RecentLeaves:  []leave.LeaveResponse{},
		Notifications: []notification.NotificationResponse{},
		OpenTickets:   []ticket.TicketResponse{},
	}
	self := leave.Actor{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.src.Profiles.GetByUserID(gctx, userID)
		if errors.Is(err, profileerrors.ErrProfileNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		resp.Profile = &p
		resp.ProfileComplete = true
		return nil
	})
	g.Go(func() error {
		r, err := s.src.Roles.GetByUserID(gctx, userID)
		if errors.Is(err, userroleerrors.ErrUserRoleNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		resp.Role = r.Role
		resp.RoleLabel = r.RoleLabel
		return nil
	})
	g.Go(func() error {
		teams, err := s.src.Teams.GetForUser(gctx, userID)
		if err != nil {
			return err
		}
		resp.Teams = teams
		return nil
	})
	g.Go(func() error {
		leaves, err := s.src.Leaves.GetAll(gctx, self, leave.ListFilter{Limit: recentLeaves})
		if err != nil {
			return err
		}
		resp.RecentLeaves = leaves
		return nil
	})
	g.Go(func() error {
		notes, err := s.src.Notifications.GetForUser(gctx, userID, recentNotifications)
		if err != nil {
			return err
		}
		resp.Notifications = notes
		return nil
	})
	g.Go(func() error {
		tickets, err := s.src.Tickets.GetAll(gctx, ticket.Actor{UserID: userID}, ticket.ListFilter{OpenOnly: true, Limit: openTickets})
		if err != nil {
			return err
		}
		resp.OpenTickets = tickets
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("build dashboard failed", zap.String("user_id", userID), zap.Error(err))
		return Response{}, err
	}
	return resp, nil
}
