package calendar

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	events := r.Group("/calendar-events")
	{
		events.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceCalendarEvent, rbac.ActionRead), h.GetAll)
		events.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceCalendarEvent, rbac.ActionCreate), h.Create)
		events.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceCalendarEvent, rbac.ActionRead), h.GetByID)
		events.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceCalendarEvent, rbac.ActionUpdate), h.Update)
		events.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceCalendarEvent, rbac.ActionDelete), h.Delete)
	}
}
