package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-teamdesk/internal/leave"
	leaveerrors "go-teamdesk/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	CreateFn  func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	GetAllFn  func(ctx context.Context, actor leave.Actor, filter leave.ListFilter) ([]leave.LeaveResponse, error)
	GetByIDFn func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error)
	UpdateFn  func(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	ApproveFn func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error)
	RejectFn  func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeLeaveService) Create(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.CreateFn(ctx, actor, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, actor leave.Actor, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	return f.GetAllFn(ctx, actor, filter)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
	return f.GetByIDFn(ctx, actor, id)
}
func (f *fakeLeaveService) Update(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.UpdateFn(ctx, actor, id, req)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
	return f.ApproveFn(ctx, actor, id)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
	return f.RejectFn(ctx, actor, id)
}
func (f *fakeLeaveService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", "u-1")
	return c, w
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("passes the caller as actor", func(t *testing.T) {
		var got leave.Actor
		h := leave.NewHandler(&fakeLeaveService{
			CreateFn: func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				got = actor
				return leave.LeaveResponse{ID: "l-1", Reason: req.Reason, StatusLabel: "Pending"}, nil
			},
		})
		c, w := newJSONContext(http.MethodPost, "/leaves",
			`{"reason":"Trip","start_date":"2024-03-01","end_date":"2024-03-02"}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "u-1", got.UserID)
		assert.False(t, got.IsStaff)
		assert.Contains(t, w.Body.String(), `"status_label":"Pending"`)
	})

	t.Run("missing reason", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newJSONContext(http.MethodPost, "/leaves", `{"start_date":"2024-03-01","end_date":"2024-03-02"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("reversed dates surface the validation message", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{
			CreateFn: func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidDateRange
			},
		})
		c, w := newJSONContext(http.MethodPost, "/leaves",
			`{"reason":"Trip","start_date":"2024-03-05","end_date":"2024-03-01"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Start date cannot be after end date")
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var got leave.ListFilter
		h := leave.NewHandler(&fakeLeaveService{
			GetAllFn: func(ctx context.Context, actor leave.Actor, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
				got = filter
				return []leave.LeaveResponse{{ID: "l-1"}}, nil
			},
		})
		c, w := newJSONContext(http.MethodGet, "/leaves?team_id=t-1&status=2", "")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "t-1", got.TeamID)
		if assert.NotNil(t, got.Status) {
			assert.Equal(t, 2, *got.Status)
		}
	})

	t.Run("non numeric status", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		c, w := newJSONContext(http.MethodGet, "/leaves?status=open", "")

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{
			ApproveFn: func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{ID: id, Status: 2, StatusLabel: "Approved"}, nil
			},
		})
		c, w := newJSONContext(http.MethodPost, "/leaves/l-1/approve", "")
		c.Params = gin.Params{{Key: "id", Value: "l-1"}}

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status_label":"Approved"`)
	})

	t.Run("already decided", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{
			ApproveFn: func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		})
		c, w := newJSONContext(http.MethodPost, "/leaves/l-1/approve", "")
		c.Params = gin.Params{{Key: "id", Value: "l-1"}}

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}
