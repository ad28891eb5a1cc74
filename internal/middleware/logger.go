package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger middleware logs HTTP requests through logrus
func Logger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// other handlers can change c.Request.URL.Path
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		start := time.Now()

		c.Next()

		latency := int(math.Ceil(float64(time.Since(start).Nanoseconds()) / 1000000.0))
		statusCode := c.Writer.Status()
		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}
		if raw != "" {
			path = path + "?" + raw
		}

		entry := logger.WithFields(logrus.Fields{
			"statusCode": statusCode,
			"latency":    latency, // ms
			"method":     c.Request.Method,
			"path":       path,
			"clientIP":   c.ClientIP(),
			"dataLength": dataLength,
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.ByType(gin.ErrorTypePrivate).String())
		}

		msg := fmt.Sprintf("%s %s %d (%dms)", c.Request.Method, path, statusCode, latency)
		switch {
		case statusCode >= http.StatusInternalServerError:
			entry.Error(msg)
		case statusCode >= http.StatusBadRequest:
			entry.Warn(msg)
		default:
			entry.Info(msg)
		}
	}
}
