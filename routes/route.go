package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tresor228/pitch-ia/backend"
)

// Web construit le routeur du serveur de pitchs.
func Web(h *backend.Handler, allowedOrigins []string, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(Logger(log))
	r.Use(cors.New(corsConfig(allowedOrigins)))

	r.POST("/generate-pitch", h.GeneratePitch)
	r.GET("/examples", h.Examples)
	r.POST("/share", h.Share)

	pitches := r.Group("/pitches")
	{
		pitches.GET("", h.ListPitches)
		pitches.GET("/:id", h.GetPitch)
		pitches.DELETE("/:id", h.DeletePitch)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
