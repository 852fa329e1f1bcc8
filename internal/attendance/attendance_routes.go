package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	records := r.Group("/attendance")
	{
		records.PUT("/monthly", handler.Upsert)
		records.GET("/monthly", handler.GetByPeriod)
		records.GET("/monthly/:employee_id", handler.GetByEmployee)
	}
}
