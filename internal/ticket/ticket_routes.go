package ticket

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	tickets := r.Group("/tickets")
	{
		tickets.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionRead), h.GetAll)
		tickets.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionCreate), h.Create)
		tickets.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionRead), h.GetByID)
		tickets.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionUpdate), h.Update)
		tickets.DELETE("/:id", middleware.StaffOnly(), h.Delete)

		tickets.POST("/:id/process", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionRespond), h.Process)
		tickets.POST("/:id/close", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionRespond), h.Close)
		tickets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionRespond), h.Reject)
		tickets.POST("/:id/mark-deleted", middleware.RBACAuthorize(rbacService, rbac.ResourceTicket, rbac.ActionRespond), h.MarkDeleted)
	}
}
