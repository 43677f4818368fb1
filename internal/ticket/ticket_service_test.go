package ticket_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/events"
	"go-teamdesk/internal/messaging/kafka"
	kafkaMock "go-teamdesk/internal/messaging/kafka/mock"
	counterMock "go-teamdesk/internal/shared/counter/mock"
	"go-teamdesk/internal/ticket"
	ticketerrors "go-teamdesk/internal/ticket/errors"
	ticketMock "go-teamdesk/internal/ticket/mock"
	"go-teamdesk/internal/tickettype"
	tickettypeerrors "go-teamdesk/internal/tickettype/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeTeams map[string]string

func (f fakeTeams) LeaderOf(ctx context.Context, teamID string) (string, error) {
	return f[teamID], nil
}

type fakeTypes map[string]tickettype.TicketTypeResponse

func (f fakeTypes) GetByID(ctx context.Context, id string) (tickettype.TicketTypeResponse, error) {
	if t, ok := f[id]; ok {
		return t, nil
	}
	return tickettype.TicketTypeResponse{}, tickettypeerrors.ErrTicketTypeNotFound
}

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  ticket.Service
	repo     *ticketMock.MockRepository
	counters *counterMock.MockRepository
	outbox   *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T, teams fakeTeams, types fakeTypes) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	repo := ticketMock.NewMockRepository(ctrl)
	counters := counterMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	return &serviceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  ticket.NewService(db, repo, counters, outbox, teams, types),
		repo:     repo,
		counters: counters,
		outbox:   outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "TK-000001", ticket.FormatNumber(1))
	assert.Equal(t, "TK-123456", ticket.FormatNumber(123456))
}

func TestTicketService_Create(t *testing.T) {
	ctx := context.Background()
	raiser := uuid.NewString()
	leader := uuid.NewString()
	teamID := uuid.NewString()
	activeType := uuid.NewString()
	retiredType := uuid.NewString()
	teams := fakeTeams{teamID: leader}
	types := fakeTypes{
		activeType:  {ID: activeType, Name: "Hardware", Active: true},
		retiredType: {ID: retiredType, Name: "Fax", Active: false},
	}
	actor := ticket.Actor{UserID: raiser}

	t.Run("empty number is generated from the team counter", func(t *testing.T) {
		deps := setupServiceTest(t, teams, types)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.counters.EXPECT().WithTx(gomock.Any()).Return(deps.counters)
		deps.counters.EXPECT().GetNextValue(ctx, teamID, "ticket").Return(int64(7), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tk *ticket.TeamTicket) error {
			assert.Equal(t, "TK-000007", tk.TicketNumber)
			assert.Equal(t, domain.TicketStatusRaised, tk.Status)
			return nil
		})
		deps.repo.EXPECT().FindByID(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*ticket.TeamTicket, error) {
			return &ticket.TeamTicket{
				ID: uuid.MustParse(id), TicketNumber: "TK-000007", TicketTypeID: uuid.MustParse(activeType),
				RaisedByID: uuid.MustParse(raiser), IssueDetail: "Laptop fan", TeamID: uuid.MustParse(teamID),
				TicketType: &tickettype.TicketType{Name: "Hardware"},
			}, nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, evt kafka.OutboxEvent) error {
			assert.Equal(t, events.TicketLifecycleTopic, evt.Topic)
			var payload events.TicketRaisedEvent
			assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
			assert.Equal(t, leader, payload.LeaderID)
			assert.Equal(t, "Hardware", payload.TicketType)
			return nil
		})

		resp, err := deps.service.Create(ctx, actor, ticket.CreateTicketRequest{
			TicketTypeID: activeType, IssueDetail: "Laptop fan", TeamID: teamID,
		})

		assert.NoError(t, err)
		assert.Equal(t, "TK-000007", resp.TicketNumber)
		assert.Equal(t, "raised", resp.StatusLabel)
		assert.Equal(t, "TK-000007 - Hardware", resp.Display)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("caller supplied number is kept", func(t *testing.T) {
		deps := setupServiceTest(t, teams, types)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.counters.EXPECT().GetNextValue(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.repo.EXPECT().FindByID(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*ticket.TeamTicket, error) {
			return &ticket.TeamTicket{ID: uuid.MustParse(id), TicketNumber: "OPS-1"}, nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, actor, ticket.CreateTicketRequest{
			TicketNumber: "OPS-1", TicketTypeID: activeType, IssueDetail: "VPN down", TeamID: teamID,
		})

		assert.NoError(t, err)
		assert.Equal(t, "OPS-1", resp.TicketNumber)
	})

	t.Run("issue time of day is kept", func(t *testing.T) {
		deps := setupServiceTest(t, teams, types)
		defer deps.db.Close()
		issued := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
		var stored *ticket.TeamTicket

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tk *ticket.TeamTicket) error {
			stored = tk
			return nil
		})
		deps.repo.EXPECT().FindByID(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*ticket.TeamTicket, error) {
			return stored, nil
		})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Create(ctx, actor, ticket.CreateTicketRequest{
			TicketNumber: "OPS-2", TicketTypeID: activeType, IssueDetail: "Printer jam", TeamID: teamID,
			IssueDate: &issued,
		})

		assert.NoError(t, err)
		assert.True(t, issued.Equal(*stored.IssueDate))
		if assert.NotNil(t, resp.IssueDate) {
			assert.Equal(t, "2024-05-10T09:30:00Z", *resp.IssueDate)
		}
	})

	t.Run("inactive ticket type", func(t *testing.T) {
		deps := setupServiceTest(t, teams, types)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actor, ticket.CreateTicketRequest{
			TicketTypeID: retiredType, IssueDetail: "Paper jam", TeamID: teamID,
		})

		assert.ErrorIs(t, err, ticketerrors.ErrTicketTypeInactive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("number longer than 10 characters", func(t *testing.T) {
		deps := setupServiceTest(t, teams, types)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actor, ticket.CreateTicketRequest{
			TicketNumber: "TK-12345678", TicketTypeID: activeType, IssueDetail: "x", TeamID: teamID,
		})

		assert.ErrorIs(t, err, ticketerrors.ErrTicketNumberTooLong)
	})
}

func TestTicketService_Update_WritesStatusVerbatim(t *testing.T) {
	ctx := context.Background()
	leader := uuid.NewString()
	teamID := uuid.New()
	typeID := uuid.New()
	deps := setupServiceTest(t, fakeTeams{teamID.String(): leader}, fakeTypes{})
	defer deps.db.Close()

	id := uuid.New()
	stored := &ticket.TeamTicket{
		ID: id, TicketTypeID: typeID, RaisedByID: uuid.New(), IssueDetail: "Printer",
		Status: domain.TicketStatusRaised, TeamID: teamID,
	}
	closed := int(domain.TicketStatusClosed)

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, id.String()).Return(stored, nil)
	deps.repo.EXPECT().Update(ctx, stored).Return(nil)
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, evt kafka.OutboxEvent) error {
		assert.Equal(t, events.TicketStatusChanged, evt.EventType)
		return nil
	})

	resp, err := deps.service.Update(ctx, ticket.Actor{UserID: leader}, id.String(), ticket.UpdateTicketRequest{
		TicketTypeID: typeID.String(), IssueDetail: "Printer", TicketStatus: &closed,
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.TicketStatus)
	assert.Equal(t, "closed", resp.StatusLabel)
	assert.Nil(t, resp.ClosedDate)
	assert.Nil(t, stored.ClosedDate)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTicketService_Workflow(t *testing.T) {
	ctx := context.Background()
	leader := uuid.NewString()
	teamID := uuid.New()
	teams := fakeTeams{teamID.String(): leader}
	leaderActor := ticket.Actor{UserID: leader}

	stored := func(status domain.TicketStatus) *ticket.TeamTicket {
		return &ticket.TeamTicket{ID: uuid.New(), RaisedByID: uuid.New(), Status: status, TeamID: teamID}
	}

	allowed := []struct {
		name string
		from domain.TicketStatus
		call func(s ticket.Service, id string, req ticket.TransitionRequest) (ticket.TicketResponse, error)
		want domain.TicketStatus
	}{
		{"raised to processing", domain.TicketStatusRaised, func(s ticket.Service, id string, req ticket.TransitionRequest) (ticket.TicketResponse, error) {
			return s.Process(ctx, leaderActor, id, req)
		}, domain.TicketStatusProcessing},
		{"processing to closed", domain.TicketStatusProcessing, func(s ticket.Service, id string, req ticket.TransitionRequest) (ticket.TicketResponse, error) {
			return s.Close(ctx, leaderActor, id, req)
		}, domain.TicketStatusClosed},
		{"processing to rejected", domain.TicketStatusProcessing, func(s ticket.Service, id string, req ticket.TransitionRequest) (ticket.TicketResponse, error) {
			return s.Reject(ctx, leaderActor, id, req)
		}, domain.TicketStatusRejected},
		{"closed to deleted", domain.TicketStatusClosed, func(s ticket.Service, id string, req ticket.TransitionRequest) (ticket.TicketResponse, error) {
			return s.MarkDeleted(ctx, leaderActor, id, req)
		}, domain.TicketStatusDeleted},
	}
	for _, tt := range allowed {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupServiceTest(t, teams, fakeTypes{})
			defer deps.db.Close()
			tk := stored(tt.from)
			comment := "on it"

			expectTx(t, deps.sqlMock, true)
			deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
			deps.repo.EXPECT().FindByID(ctx, tk.ID.String()).Return(tk, nil)
			deps.repo.EXPECT().Update(ctx, tk).Return(nil)
			deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
			deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

			resp, err := tt.call(deps.service, tk.ID.String(), ticket.TransitionRequest{Comments: &comment})

			assert.NoError(t, err)
			assert.Equal(t, int(tt.want), resp.TicketStatus)
			assert.Equal(t, "on it", resp.Comments)
			assert.Nil(t, resp.ClosedDate)
			assert.Nil(t, resp.ResponseBy)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}

	rejected := []struct {
		name string
		from domain.TicketStatus
		call func(s ticket.Service, id string) (ticket.TicketResponse, error)
	}{
		{"raised cannot close", domain.TicketStatusRaised, func(s ticket.Service, id string) (ticket.TicketResponse, error) {
			return s.Close(ctx, leaderActor, id, ticket.TransitionRequest{})
		}},
		{"closed cannot reopen to processing", domain.TicketStatusClosed, func(s ticket.Service, id string) (ticket.TicketResponse, error) {
			return s.Process(ctx, leaderActor, id, ticket.TransitionRequest{})
		}},
		{"deleted stays deleted", domain.TicketStatusDeleted, func(s ticket.Service, id string) (ticket.TicketResponse, error) {
			return s.MarkDeleted(ctx, leaderActor, id, ticket.TransitionRequest{})
		}},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupServiceTest(t, teams, fakeTypes{})
			defer deps.db.Close()
			tk := stored(tt.from)

			expectTx(t, deps.sqlMock, false)
			deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
			deps.repo.EXPECT().FindByID(ctx, tk.ID.String()).Return(tk, nil)

			_, err := tt.call(deps.service, tk.ID.String())

			assert.ErrorIs(t, err, ticketerrors.ErrInvalidStatusTransition)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}

	t.Run("members cannot respond", func(t *testing.T) {
		deps := setupServiceTest(t, teams, fakeTypes{})
		defer deps.db.Close()
		tk := stored(domain.TicketStatusRaised)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, tk.ID.String()).Return(tk, nil)

		_, err := deps.service.Process(ctx, ticket.Actor{UserID: uuid.NewString()}, tk.ID.String(), ticket.TransitionRequest{})

		assert.ErrorIs(t, err, ticketerrors.ErrNotTeamLeader)
	})
}

func TestTicketService_GetAll_ScopesNonStaff(t *testing.T) {
	ctx := context.Background()
	caller := uuid.NewString()
	deps := setupServiceTest(t, fakeTeams{}, fakeTypes{})

	deps.repo.EXPECT().FindAll(ctx, ticket.ListFilter{UserID: caller, OpenOnly: true}).Return(nil, nil)

	resp, err := deps.service.GetAll(ctx, ticket.Actor{UserID: caller}, ticket.ListFilter{OpenOnly: true})

	assert.NoError(t, err)
	assert.Empty(t, resp)
}

func TestTicketService_GetByID_Visibility(t *testing.T) {
	ctx := context.Background()
	leader := uuid.NewString()
	raiser := uuid.New()
	teamID := uuid.New()
	tk := &ticket.TeamTicket{ID: uuid.New(), RaisedByID: raiser, TeamID: teamID, Status: domain.TicketStatusRaised}

	cases := []struct {
		name    string
		actor   ticket.Actor
		visible bool
	}{
		{"raiser", ticket.Actor{UserID: raiser.String()}, true},
		{"team leader", ticket.Actor{UserID: leader}, true},
		{"staff", ticket.Actor{UserID: uuid.NewString(), IsStaff: true}, true},
		{"other team member", ticket.Actor{UserID: uuid.NewString()}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := setupServiceTest(t, fakeTeams{teamID.String(): leader}, fakeTypes{})
			deps.repo.EXPECT().FindByID(ctx, tk.ID.String()).Return(tk, nil)

			resp, err := deps.service.GetByID(ctx, tc.actor, tk.ID.String())

			if tc.visible {
				assert.NoError(t, err)
				assert.Equal(t, tk.ID.String(), resp.ID)
			} else {
				assert.ErrorIs(t, err, ticketerrors.ErrTicketNotFound)
			}
		})
	}
}
