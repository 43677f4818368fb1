package team

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	teams := r.Group("/teams")
	{
		teams.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionRead), h.GetAll)
		teams.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionCreate), h.Create)
		teams.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionRead), h.GetByID)
		teams.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionUpdate), h.Update)
		teams.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionDelete), h.Delete)

		teams.POST("/:id/members", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionUpdate), h.AddMembers)
		teams.DELETE("/:id/members/:user_id", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionUpdate), h.RemoveMember)
	}
}
