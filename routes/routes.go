package routes

import (
	"net/http"
	"time"

	"teambond/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPlanRoutes registers the plan generation endpoint.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/plans")
	{
		api.POST("/generate", hb.GeneratePlans)
	}
}

// RegisterRosterRoutes registers team-member CRUD endpoints.
func RegisterRosterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/team-members")
	{
		api.POST("", hb.CreateMember)
		api.GET("", hb.ListMembers)
		api.GET("/:id", hb.GetMember)
		api.PUT("/:id", hb.UpdateMember)
		api.DELETE("/:id", hb.DeleteMember)
	}
}

// RegisterHistoryRoutes registers saved-event endpoints.
func RegisterHistoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.POST("", hb.SaveEvent)
		api.GET("", hb.ListEvents)
		api.GET("/:id", hb.GetEvent)
		api.POST("/:id/rate", hb.RateEvent)
		api.DELETE("/:id", hb.DeleteEvent)
	}
}

// RegisterAIOpsRoutes registers provider telemetry endpoints.
func RegisterAIOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.GET("/providers/stats", hb.ProviderStats)
		api.POST("/ab-tests", hb.SetupABTest)
		api.GET("/ab-tests/:name", hb.ABTestResults)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPlanRoutes(r, hb)
	RegisterRosterRoutes(r, hb)
	RegisterHistoryRoutes(r, hb)
	RegisterAIOpsRoutes(r, hb)
}
