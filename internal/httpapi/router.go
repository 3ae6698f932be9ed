package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/metrics"
)

type RouterConfig struct {
	Course       Course
	AllowOrigins []string
	Log          *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger.OrNop(cfg.Log)))

	if len(cfg.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.GET("/healthcheck", HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h := NewCourseHandler(cfg.Course)
	api := router.Group("/api")
	{
		api.GET("/lessons", h.ListLessons)
		api.POST("/lessons/:id/start", h.StartLesson)
		api.DELETE("/lessons/:id/cache", h.Regenerate)

		api.GET("/session", h.State)
		api.DELETE("/session", h.Quit)
		api.POST("/session/answer", h.SubmitAnswer)
		api.POST("/session/skip", h.Skip)
		api.POST("/session/advance", h.Advance)
		api.POST("/session/complete", h.Complete)

		api.GET("/progress", h.Progress)
		api.POST("/reset", h.Reset)
	}
	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
