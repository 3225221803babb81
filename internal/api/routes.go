package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	// --- Site configuration ---
	siteGroup := router.Group("/site")
	{
		siteGroup.POST("/generate", h.GenerateSite) // Prompt to validated configuration
		siteGroup.POST("/validate", h.ValidateSite) // Report on a submitted configuration
		siteGroup.POST("/sanitize", h.SanitizeSite) // Clean a submitted configuration
		siteGroup.GET("/:id", h.GetSite)            // Fetch a stored configuration
	}

	// --- Signed ingestion from other systems ---
	router.POST("/webhooks/site", h.IngestSite)

	// --- Utilities ---
	router.GET("/stats", h.Stats)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "generator": h.pipeline.GeneratorName()})
	})
}
