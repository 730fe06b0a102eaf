package workplace

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
	workplaces := r.Group("/workplaces")
	workplaces.Use(auth)
	{
		workplaces.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkplace, rbac.ActionRead), h.GetAll)
		workplaces.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkplace, rbac.ActionCreate), h.Create)
		workplaces.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkplace, rbac.ActionRead), h.GetByID)
		workplaces.PATCH("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkplace, rbac.ActionUpdate), h.Update)
		workplaces.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceWorkplace, rbac.ActionDelete), h.Delete)
	}
}
