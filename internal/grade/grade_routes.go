package grade

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
	grades := r.Group("/grades")
	grades.Use(auth)
	{
		grades.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceGrade, rbac.ActionRead), h.GetAll)
		grades.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceGrade, rbac.ActionCreate), h.Create)
		grades.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceGrade, rbac.ActionRead), h.GetByID)
		grades.PATCH("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceGrade, rbac.ActionUpdate), h.Update)
		grades.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceGrade, rbac.ActionDelete), h.Delete)
	}
}
