package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ider-17/Bondly/pkg/response"
)

// BodyLimit 限制请求体大小，防止超大请求占用资源
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
