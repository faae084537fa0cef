package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	intconfig "tripbook/internal/config"
	h "tripbook/internal/http/handlers"
	"tripbook/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000", "http://127.0.0.1:3000",
			"http://localhost:5173", "http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins := []string{}
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowOrigins = origins
	}
	return cfg
}

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(corsConfig()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)

		// Vehicles
		vehicles := api.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.POST("", auth, h.CreateVehicle)
		vehicles.PUT("/:id", auth, h.UpdateVehicle)
		vehicles.DELETE("/:id", auth, h.DeleteVehicle)

		// Trips
		trips := api.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.POST("", auth, h.CreateTrip)
		trips.PUT("/:id", auth, h.UpdateTrip)
		trips.DELETE("/:id", auth, h.DeleteTrip)

		// Earnings
		earnings := api.Group("/earnings")
		earnings.GET("", h.GetEarnings)
		earnings.POST("", auth, h.CreateEarning)
		earnings.DELETE("/:id", auth, h.DeleteEarning)

		// Exports
		exports := api.Group("/exports")
		exports.GET("/ledger", h.GetLedger)
		exports.GET("/ledger.csv", h.GetLedgerCSV)
		exports.GET("/ledger.pdf", h.GetLedgerPDF)
	}

	h.SetRouter(r)
	return r
}
