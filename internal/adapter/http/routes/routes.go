package routes

import (
	"mygene/internal/adapter/http/handler"
	"mygene/internal/adapter/http/middleware"
	. "mygene/pkg/auth"
	. "mygene/pkg/config"
	. "mygene/pkg/middlewares"
	. "mygene/pkg/response"
	. "mygene/pkg/tracing"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	AuthHandler     *handler.AuthHandler
	ProfileHandler  *handler.ProfileHandler
	QuestionHandler *handler.QuestionHandler
}

func SetupRouter(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	responseCache := SetupGinMiddlewareWithConfig(router, "mygene", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	setupProtectedRoutes(router, handlers, responseCache)

	return router
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/")
	{
		public.POST("/signup", authHandler.RegisterByEmailAndPassword)
		public.POST("/auth", authHandler.AuthByEmailAndPassword)
	}
}

func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig, cache *ResponseCache) {
	if handlers.ProfileHandler == nil && handlers.QuestionHandler == nil {
		return
	}

	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(GinJwtMiddleware())

	// The cache runs after the JWT check so anonymous callers can never read
	// or seed cached responses, and keys carry the verified user id.
	if cache != nil {
		protected.Use(cache.CacheMiddleware())
	}
	{
		if handlers.ProfileHandler != nil {
			protected.GET("/profiles", handlers.ProfileHandler.GetAllProfiles)
			protected.POST("/profiles", handlers.ProfileHandler.CreateProfile)
			protected.GET("/profiles/:code", handlers.ProfileHandler.GetProfileByCode)
			protected.PUT("/profiles/:code", handlers.ProfileHandler.UpdateProfileByCode)
			protected.DELETE("/profiles/:code", handlers.ProfileHandler.DeleteProfileByCode)
		}

		if handlers.QuestionHandler != nil {
			protected.POST("/profiles/:code/question", handlers.QuestionHandler.AskQuestion)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	setupProtectedRoutes(router, handlers, nil)

	return router
}
