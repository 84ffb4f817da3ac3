package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs each request with latency and status, recovers
// from panics and converts them into JSON 500 responses.
func RequestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				log.WithFields(logrus.Fields{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
					"panic":  fmt.Sprintf("%v", recovered),
					"stack":  string(debug.Stack()),
				}).Error("request panicked")

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
				c.Abort()
				return
			}

			entry := log.WithFields(logrus.Fields{
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"status":    c.Writer.Status(),
				"latency":   time.Since(start).String(),
				"client_ip": c.ClientIP(),
				"user_id":   c.GetString("user_id"),
			})
			switch {
			case c.Writer.Status() >= http.StatusInternalServerError:
				entry.Error("request failed")
			case len(c.Errors) > 0:
				entry.WithField("errors", c.Errors.String()).Warn("request completed with errors")
			default:
				entry.Debug("request completed")
			}
		}()

		c.Next()
	}
}
