// Package router wires routes and middleware into the gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"bidtab/internal/handler"
	"bidtab/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	extractionH *handler.ExtractionHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	extractions := v1.Group("/extractions")
	extractions.POST("/generate", extractionH.Generate)
	extractions.POST("/generate-xlsx", extractionH.GenerateXLSX)
	extractions.POST("/refine", extractionH.Refine)

	return r
}
