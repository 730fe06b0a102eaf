package payroll

import (
	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payslips := r.Group("/payslips")
	payslips.Use(auth)
	{
		payslips.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionRead), handler.GetAll)
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionRead), handler.GetByID)
		payslips.GET("/:id/breakdown", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionRead), handler.GetBreakdown)
		payslips.GET("/:id/pdf", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionRead), handler.DownloadPDF)
		if redisClient != nil {
			payslips.POST(
				"",
				middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionCreate),
				middleware.RateLimitByUser(1, 5),
				middleware.Idempotency(redisClient),
				handler.Generate,
			)
		} else {
			payslips.POST(
				"",
				middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionCreate),
				middleware.RateLimitByUser(1, 5),
				handler.Generate,
			)
		}
		payslips.POST(
			"/:id/pdf",
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionCreate),
			middleware.RateLimitByUser(0.5, 2),
			handler.GeneratePDF,
		)
		payslips.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionPay), handler.MarkPaid)
		payslips.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayslip, rbac.ActionDelete), handler.Delete)
	}
}
