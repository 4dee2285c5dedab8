package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Ingestion and stored-item endpoints
	r.POST("/rss-migrate", handler.RunIngestion)
	r.GET("/rss-migrate", handler.ListPosts)
	r.POST("/rss-migrate/keywords", handler.UpdateKeywords)
	r.POST("/rss-migrate/newsletter-date", handler.UpdateNewsletterDate)
	r.POST("/rss-check-today", handler.CheckToday)

	// Config lists
	r.GET("/feeds", handler.ListFeedSources)
	r.POST("/feeds", handler.AddFeedSource)
	r.PUT("/feeds", handler.UpdateFeedSource)
	r.DELETE("/feeds", handler.DeleteFeedSource)

	r.GET("/keywords", handler.ListKeywords)
	r.POST("/keywords", handler.AddKeyword)
	r.PUT("/keywords", handler.UpdateKeyword)
	r.DELETE("/keywords", handler.DeleteKeyword)

	// Newsletter
	r.GET("/newsletter-list", handler.ListNewsletters)
	r.GET("/newsletter-get/:filename", handler.GetNewsletter)
	r.GET("/newsletter-preview/:filename", handler.PreviewNewsletter)

	// Subscribers
	r.POST("/newsletter-subscribe", handler.Subscribe)
	r.POST("/newsletter-subscriber-delete", handler.DeleteSubscriber)
	r.GET("/newsletter-subscriber-info", handler.SubscriberInfo)

	// Inquiries
	r.POST("/inquiry-to-slack", handler.InquiryToSlack)

	// Health
	r.GET("/health", handler.HealthCheck)

	// Admin-only maintenance endpoints, gated when an access key is set
	admin := r.Group("/")
	if apiAccessKey != "" {
		admin.Use(authMiddleware(apiAccessKey))
		slog.Info("Admin endpoints require API key")
	} else {
		slog.Info("Admin endpoints unauthenticated (API_ACCESS_KEY not set)")
	}
	admin.POST("/rss-delete-today", handler.DeleteToday)
	admin.PUT("/newsletter-subscriber-update", handler.UpdateSubscriber)

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for admin endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "API key required",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
