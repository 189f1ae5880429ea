package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "storefront_ai_server/internal/api"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *handlers.APIHandler) {

	// --- Generation ---
	projectGroup := router.Group("/project")
	{
		projectGroup.POST("/generate", h.GeneratePage)         // New page or refinement of the last one
		projectGroup.POST("/variants", h.GenerateVariants)     // One page per fixed style, concurrently
		projectGroup.POST("/sections/insert", h.InsertSection) // Add or rewrite one section, merged into the page
	}

	// --- Section catalog ---
	router.GET("/sections", h.ListSections) // ?pageType=landing|product&category=&q=

	// --- Saved pages ---
	pagesGroup := router.Group("/pages")
	{
		pagesGroup.POST("", h.SavePage)
		pagesGroup.GET("", h.ListPages)
		pagesGroup.GET("/:id", h.GetPage)
		pagesGroup.DELETE("/:id", h.DeletePage)
		pagesGroup.POST("/:id/versions", h.AddVersion)
		pagesGroup.POST("/:id/share", h.SharePage)
		pagesGroup.GET("/:id/export", h.ExportPage) // Zip archive of a runnable project
		pagesGroup.POST("/:id/deploy", h.DeployPage)
	}

	// Public, read-only view of a shared page
	router.GET("/share/:token", h.GetShared)

	// --- Simple Health Check ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
