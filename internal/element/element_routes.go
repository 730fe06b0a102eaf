package element

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	elements := r.Group("/elements")
	elements.Use(auth)
	{
		elements.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceElement, rbac.ActionRead), h.GetAll)
		elements.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceElement, rbac.ActionCreate), h.Create)
		elements.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceElement, rbac.ActionRead), h.GetByID)
		elements.PATCH("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceElement, rbac.ActionUpdate), h.Update)
		elements.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceElement, rbac.ActionDelete), h.Delete)
	}
}
