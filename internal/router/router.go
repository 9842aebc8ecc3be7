package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "glosaguard/docs"
	"glosaguard/internal/handler"
	"glosaguard/internal/metrics"
	"glosaguard/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	submissionH *handler.SubmissionHandler,
	validationH *handler.ValidationHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger("/healthz", "/readyz", "/metrics"))
	r.Use(middleware.CORS(corsOrigins))
	r.Use(metrics.Middleware())

	// Health checks, scraping and API docs
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Stateless validation
	v1.POST("/validate", validationH.Check)
	v1.GET("/rules", validationH.Rules)

	// Submissions
	subs := v1.Group("/submissions")
	subs.POST("", submissionH.Create)
	subs.GET("", submissionH.List)
	subs.GET("/:id", submissionH.GetByID)
	subs.PUT("/:id/status", submissionH.UpdateStatus)
	subs.POST("/:id/validate", validationH.Validate)
	subs.GET("/:id/validation", validationH.GetValidation)
	subs.PATCH("/:id/guide", validationH.EditGuide)

	return r
}
