package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "vocalis/docs"
	"vocalis/internal/handler"
	"vocalis/internal/middleware"
	"vocalis/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	sessionH *handler.SessionHandler,
	schemaH *handler.SchemaHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/document-types", schemaH.List)

	sessions := protected.Group("/sessions")
	sessions.POST("", sessionH.Start)
	sessions.GET("/:id", sessionH.Get)
	sessions.DELETE("/:id", sessionH.Discard)
	sessions.POST("/:id/turns", sessionH.SubmitTurn)
	sessions.PATCH("/:id/record", sessionH.SetField)
	sessions.POST("/:id/export", sessionH.Export)

	return r
}
