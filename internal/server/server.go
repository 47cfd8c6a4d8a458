// Package server exposes the codec over HTTP.
package server

import (
	"time"

	"github.com/andresmejia3/bmphide/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// New builds the router. Each request gets its own stego.Engine.
func New(conf config.ServeConfig, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.MaxMultipartMemory = conf.MaxUploadMB << 20

	if len(conf.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  conf.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{HeaderSeed, HeaderSeedGenerated, "Content-Disposition"},
			MaxAge:        12 * time.Hour,
		}))
	}

	h := &StegoHandler{maxUpload: conf.MaxUploadMB << 20, logger: logger}

	api := router.Group("/api/v1")
	{
		api.GET("/health", h.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/encode", h.Encode)
			stego.POST("/decode", h.Decode)
			stego.POST("/inspect", h.Inspect)
		}
	}

	return router
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
