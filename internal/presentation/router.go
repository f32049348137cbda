package presentation

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "repo-lister/docs"
	"repo-lister/internal/config"
	"repo-lister/internal/middleware"
	"repo-lister/internal/presentation/handlers"
)

// NewRouter builds the gin engine with middleware and routes
func NewRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	repositoryHandler *handlers.RepositoryHandler,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORS)))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", healthHandler.Health)

	github := router.Group("/github")
	{
		github.GET("/:username/repos", repositoryHandler.ListUserRepositories)
	}

	if cfg.Server.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}

	allowAll := len(cfg.AllowedOrigins) == 0
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}
