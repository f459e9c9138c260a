// Package handler wires the Public API surface (spec.md §4.I) onto gin.
// Adapted from the teacher's internal/handler/router.go: same
// middleware chain shape (recovery, request logging), same route-group
// convention, generalized from code-graph endpoints to query-ngram and
// check-text.
package handler

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SetupRouter builds the gin engine exposing query-ngram, check-text and
// a health check.
func SetupRouter(ngramHandler *NGramHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(CustomRecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ngram", ngramHandler.QueryNGram)
		v1.POST("/check-text", ngramHandler.CheckText)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "healthy",
				"ready":  ngramHandler.Ready(),
			})
		})
	}

	return router
}

// RequestIDMiddleware stamps every request with a correlation id, read
// from an inbound X-Request-Id header when present, generated otherwise.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// LoggerMiddleware logs one structured line per request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Any("request_id", c.MustGet("request_id")),
		)
		c.Next()
	}
}

// CustomRecoveryMiddleware recovers panics in handlers, logs the stack,
// and returns a generic 500 — never the internal error string (spec.md
// §7: "5xx responses MUST NOT include internal error strings").
func CustomRecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
