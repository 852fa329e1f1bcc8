package middleware

import (
	"net/http"

	"go-hr-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyScope requires a company id on every request and propagates it to the
// standard context so services and repositories stay gin-agnostic.
func CompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader("X-Company-ID")
		if companyID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "X-Company-ID header is required",
			})
			return
		}
		if _, err := uuid.Parse(companyID); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "X-Company-ID must be a valid UUID",
			})
			return
		}

		c.Set("company_id", companyID)
		c.Request = c.Request.WithContext(
			contextutil.WithCompanyID(c.Request.Context(), companyID),
		)
		c.Next()
	}
}

// ContextLogger decorates a request-scoped logger with tracing metadata and
// stores it in the request context.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)
		c.Set("request_id", rid)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("path", c.FullPath()),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
