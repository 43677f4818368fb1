package rbac

import (
	"net/http"
	"strings"

	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

type enforceBody struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type permissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Enforce answers whether the caller may perform an action.
func (h *Handler) Enforce(c *gin.Context) {
	var body enforceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "resource and action are required", err.Error())
		return
	}

	req := domain.EnforceRequest{
		UserID:   c.GetString("user_id"),
		IsStaff:  c.GetBool("is_staff"),
		Resource: strings.TrimSpace(body.Resource),
		Action:   strings.TrimSpace(body.Action),
	}

	ctx := c.Request.Context()
	allowed, err := h.service.Enforce(ctx, req)
	if err != nil {
		h.logger.Error("enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
		return
	}
	subject, err := h.service.SubjectOf(ctx, req.UserID, req.IsStaff)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed, Subject: subject}, nil)
}

// Permissions lists everything the caller's role grants.
func (h *Handler) Permissions(c *gin.Context) {
	subject, err := h.service.SubjectOf(c.Request.Context(), c.GetString("user_id"), c.GetBool("is_staff"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
		return
	}
	perms, err := h.service.PermissionsOf(subject)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
		return
	}

	resp := make([]permissionResponse, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		resp = append(resp, permissionResponse{Resource: p[1], Action: p[2]})
	}
	response.Success(c, http.StatusOK, gin.H{"subject": subject, "permissions": resp}, nil)
}
