package notification

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), h.GetAll)
		notifications.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionCreate), h.Create)
		notifications.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), h.GetByID)
		notifications.PUT("/:id", middleware.StaffOnly(), h.Update)
		notifications.DELETE("/:id", middleware.StaffOnly(), h.Delete)
	}
}
