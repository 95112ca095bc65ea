package routes

import (
	"net/http"
	"time"

	"estatedesk/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterListingRoutes registers the dashboard's listing endpoints.
func RegisterListingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/listings")
	{
		api.GET("", hb.BrowseListingsHandler)
		api.GET("/:id", hb.GetListingByIDHandler)
		api.PATCH("/:id", hb.UpdateListingHandler)
		api.PUT("/:id/status", hb.UpdateListingStatusHandler)
		api.DELETE("/:id", hb.DeleteListingHandler)
	}
}

// RegisterWizardRoutes registers the listing wizard's session endpoints.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wizard")
	{
		api.POST("/session", hb.StartSessionHandler)
		api.GET("/session/:sessionID", hb.GetSessionHandler)
		api.PATCH("/session/:sessionID/draft", hb.UpdateDraftHandler)
		api.POST("/session/:sessionID/advance", hb.AdvanceHandler)
		api.POST("/session/:sessionID/retreat", hb.RetreatHandler)
		api.POST("/session/:sessionID/files", hb.AttachFileHandler)
		api.DELETE("/session/:sessionID/files/:fileID", hb.RemoveFileHandler)
		api.PUT("/session/:sessionID/cover/:fileID", hb.SetCoverHandler)
		api.POST("/session/:sessionID/submit", hb.SubmitHandler)
		api.DELETE("/session/:sessionID", hb.DiscardSessionHandler)
	}
}

// RegisterMetaRoutes registers form-metadata endpoints.
func RegisterMetaRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/meta")
	{
		api.GET("/vocabularies", hb.VocabulariesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Estatedesk"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterListingRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterMetaRoutes(r, hb)
	RegisterHealthRoute(r)
}
