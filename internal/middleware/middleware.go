package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORS headers sent by the registration endpoints
const (
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// CORSHeaders returns the CORS headers for a request from origin. The origin
// is reflected, or * when the request carries none.
func CORSHeaders(origin string) map[string]string {
	allowOrigin := origin
	if allowOrigin == "" {
		allowOrigin = "*"
	}

	return map[string]string{
		"Vary":                         "Origin",
		"Access-Control-Allow-Origin":  allowOrigin,
		"Access-Control-Allow-Methods": corsAllowMethods,
		"Access-Control-Allow-Headers": corsAllowHeaders,
	}
}

// CORS middleware for handling Cross-Origin Resource Sharing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		for key, value := range CORSHeaders(c.GetHeader("Origin")) {
			c.Header(key, value)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ErrorHandler logs errors attached by handlers and answers 500 when a
// handler failed without writing a response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
		}).Error("Request error")

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		}
	}
}
