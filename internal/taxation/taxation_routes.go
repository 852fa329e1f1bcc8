package taxation

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tax := r.Group("/tax")
	{
		tax.POST("/calculate", handler.Calculate)
		tax.GET("/results/:employee_id", handler.GetResult)
		tax.GET("/provision", handler.Provision)
	}
}
