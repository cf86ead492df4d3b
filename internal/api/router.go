package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/config"
	"github.com/users-generator-api/internal/metrics"
	"github.com/users-generator-api/internal/service"
)

const serviceName = "users-generator-api"

// HealthChecker reports whether the database connection is usable.
// *database.DB satisfies it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. db and prom may be nil;
// without db the health check relies on the user count alone, and without
// prom no metrics are collected or exposed.
func NewRouter(services *service.Services, db HealthChecker, prom *metrics.Prom, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = cfg.Import.MaxUploadSize + 1<<20

	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(securityHeadersMiddleware())
	if prom != nil {
		router.Use(prom.GinHandleMiddleware())
	}

	userHandler := NewUserHandler(services, cfg, log)
	authHandler := NewAuthHandler(services, log)

	router.GET("/health", healthCheck(db, services.User, log))
	if prom != nil {
		router.GET("/metrics", gin.WrapH(prom.Handler()))
	}

	router.GET("/users/generate", userHandler.Generate)
	router.POST("/users/batch", userHandler.BatchImport)
	router.POST("/auth", authHandler.Authenticate)

	authed := router.Group("", requireAuth(services.Auth, log))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.POST("/auth/refresh", authHandler.Refresh)
		authed.GET("/users/me", userHandler.Me)
		authed.GET("/users/:username", userHandler.Show)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}

// healthCheck reports healthy while the database pings and the user store
// answers
func healthCheck(db HealthChecker, users service.UserService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var count int
		err := pingDB(ctx, db)
		if err == nil {
			count, err = users.Count(ctx)
		}
		if err != nil {
			log.Error().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
			"users":     count,
		})
	}
}

func pingDB(ctx context.Context, db HealthChecker) error {
	if db == nil {
		return nil
	}
	return db.HealthCheck(ctx)
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware propagates or assigns a request id
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDHeader)).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}
