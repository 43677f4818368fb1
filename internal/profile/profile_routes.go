package profile

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("/me", middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionRead), h.GetMine)
		profiles.PUT("/me", middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionUpdate), h.UpdateMine)

		profiles.GET("", middleware.StaffOnly(), h.GetAll)
		profiles.POST("", middleware.StaffOnly(), h.Create)
		profiles.GET("/:id", middleware.StaffOnly(), h.GetByID)
		profiles.PUT("/:id", middleware.StaffOnly(), h.Update)
		profiles.DELETE("/:id", middleware.StaffOnly(), h.Delete)
	}
}

// RegisterSetupRoute mounts the first-login profile setup endpoint.
func RegisterSetupRoute(r gin.IRoutes, h *Handler, rbacService middleware.RBACService) {
	r.POST("/create_user_profile/", middleware.RBACAuthorize(rbacService, rbac.ResourceProfile, rbac.ActionCreate), h.CreateForCaller)
}
