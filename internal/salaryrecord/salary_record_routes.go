package salaryrecord

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hr-payroll/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	records := r.Group("/salary-records")
	{
		if rdb != nil {
			records.POST("", middleware.Idempotency(rdb), handler.Save)
			records.POST("/generate", middleware.Idempotency(rdb), handler.Generate)
		} else {
			records.POST("", handler.Save)
			records.POST("/generate", handler.Generate)
		}
		records.GET("", handler.GetAll)
	}
}
