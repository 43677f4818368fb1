package tickettype

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	types := r.Group("/ticket-types")
	{
		types.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceTicketType, rbac.ActionRead), h.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceTicketType, rbac.ActionRead), h.GetByID)
		types.POST("", middleware.StaffOnly(), h.Create)
		types.PUT("/:id", middleware.StaffOnly(), h.Update)
		types.DELETE("/:id", middleware.StaffOnly(), h.Delete)
	}
}
