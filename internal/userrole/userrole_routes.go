package userrole

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	roles := r.Group("/user-roles")
	{
		roles.GET("/me", middleware.RBACAuthorize(rbacService, rbac.ResourceUserRole, rbac.ActionRead), h.GetMine)
		roles.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceUserRole, rbac.ActionRead), h.GetAll)
		roles.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceUserRole, rbac.ActionCreate), h.Create)
		roles.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceUserRole, rbac.ActionRead), h.GetByID)
		roles.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceUserRole, rbac.ActionUpdate), h.Update)
		roles.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceUserRole, rbac.ActionDelete), h.Delete)
	}
}
