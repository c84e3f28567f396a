package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/response"
)

// ErrorHandler writes the last error attached with c.Error when nothing
// else has answered the request.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		response.Error(c, c.Errors.Last().Err)
	}
}
