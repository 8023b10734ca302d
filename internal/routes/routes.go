package routes

import (
	"time"

	"github.com/01moynul/plantsy-golang/internal/config"
	"github.com/01moynul/plantsy-golang/internal/handlers"
	"github.com/01moynul/plantsy-golang/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsConfig builds the CORS policy from the configured origins.
// A "*" entry opens the API to every origin, without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

func SetupRouter(h *handlers.Handlers, cfg config.ServerConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// --- Health ---
	router.GET("/health", h.HealthCheck)
	router.GET("/healthz", h.HealthCheck)

	// --- Plant Routes ---
	plants := router.Group("/plants")
	{
		plants.GET("", h.GetAllPlants)
		plants.POST("", h.CreatePlant)
		plants.GET("/:id", h.GetPlant)
		plants.PATCH("/:id", h.UpdatePlant)
		plants.DELETE("/:id", h.DeletePlant)
	}

	// --- Plant Images ---
	router.POST("/uploads", h.UploadImage)
	router.Static("/uploads", cfg.UploadDir)

	return router
}
