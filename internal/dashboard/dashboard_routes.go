package dashboard

import (
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the home page and its profile alias.
func RegisterRoutes(r gin.IRoutes, h *Handler, rbacService middleware.RBACService) {
	authorize := middleware.RBACAuthorize(rbacService, rbac.ResourceDashboard, rbac.ActionRead)
	r.GET("/", authorize, h.Show)
	r.GET("/accounts/profile/", authorize, h.Show)
}
