package handler

import (
	"net/http"
	"time"

	"emurebook/internal/config"
	"emurebook/internal/http-api/middleware"
	"emurebook/internal/http-api/repository"
	"emurebook/internal/http-api/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and all route groups onto a gin engine.
func NewRouter(
	cfg *config.Config,
	authService service.AuthService,
	bookService service.BookService,
	messageService service.MessageService,
	userService service.UserService,
	userRepo repository.UserRepository,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(authService, userRepo)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
	NewAuthHandler(authService).RegisterRoutes(authGroup, authMW)

	NewBookHandler(bookService).RegisterRoutes(api.Group("/books"), authMW)
	NewMessageHandler(messageService).RegisterRoutes(api.Group("/messages"), authMW)
	NewUserHandler(userService).RegisterRoutes(api.Group("/users"), authMW)

	return router
}
