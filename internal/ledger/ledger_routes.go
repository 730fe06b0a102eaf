package ledger

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

	create := func(resource string) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{middleware.RBACAuthorize(rbacService, resource, rbac.ActionCreate)}
		if redisClient != nil {
			chain = append(chain, middleware.Idempotency(redisClient))
		}
		return chain
	}

	payments := r.Group("/payments")
	payments.Use(auth)
	{
		payments.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourcePayment, rbac.ActionRead), handler.GetPayments)
		payments.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayment, rbac.ActionRead), handler.GetPaymentByID)
		payments.POST("", append(create(rbac.ResourcePayment), handler.CreatePayment)...)
		payments.PATCH("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayment, rbac.ActionUpdate), handler.UpdatePayment)
		payments.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourcePayment, rbac.ActionDelete), handler.DeletePayment)
	}

	debts := r.Group("/debts")
	debts.Use(auth)
	{
		debts.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceDebt, rbac.ActionRead), handler.GetDebts)
		debts.POST("", append(create(rbac.ResourceDebt), handler.CreateDebt)...)
		debts.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceDebt, rbac.ActionDelete), handler.DeleteDebt)
	}

	reports := r.Group("/reports")
	reports.Use(auth)
	{
		reports.GET(
			"/payments/pdf",
			middleware.RBACAuthorize(rbacService, rbac.ResourceReport, rbac.ActionRead),
			middleware.RateLimitByUser(0.2, 2),
			handler.PaymentsReport,
		)
	}
}
