package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "estatehub/internal/app"
	"estatehub/internal/bootstrap"
	"estatehub/internal/cache"
	"estatehub/internal/pkg/upload"
	"estatehub/internal/platform/rabbitmq"
	"estatehub/internal/repository"
	"estatehub/internal/transport/http/handler"
	"estatehub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = int64(app.Config.Upload.MaxSizeMB) << 20

	uploader, err := upload.NewSaver(app.Config.Upload.Dir, app.Config.App.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("init upload saver failed: %w", err)
	}

	userRepo := repository.NewUserRepository(app.MySQL)
	propertyRepo := repository.NewPropertyRepository(app.MySQL)
	wishlistRepo := repository.NewWishlistRepository(app.MySQL)

	publisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ListingEventQueue)
	feedCache := cache.NewListingCache(
		app.Redis,
		time.Duration(app.Config.Redis.ListingTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.ListingDirtyTTLSeconds)*time.Second,
	)

	jwtExpiration := time.Duration(app.Config.Auth.JWTExpireMinute) * time.Minute
	authService := appsvc.NewAuthService(userRepo, app.Config.Auth.JWTSecret, jwtExpiration)
	propertyService := appsvc.NewPropertyService(propertyRepo, publisher, feedCache)
	wishlistService := appsvc.NewWishlistService(wishlistRepo, propertyRepo, publisher)

	authHandler := handler.NewAuthHandler(authService, int(jwtExpiration.Seconds()), app.Config.IsProduction())
	propertyHandler := handler.NewPropertyHandler(propertyService, wishlistService, uploader)
	userHandler := handler.NewUserHandler(authService, propertyService, uploader)
	healthHandler := handler.NewHealthHandler(app)

	router.Static("/uploads", uploader.Dir())
	router.GET("/healthz", healthHandler.Check)

	authRequired := middleware.AuthRequired(app.Config.Auth.JWTSecret, userRepo)
	optionalAuth := middleware.OptionalAuth(app.Config.Auth.JWTSecret, userRepo)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authRequired, authHandler.Me)

	propertyGroup := api.Group("/property")
	propertyGroup.GET("/all", propertyHandler.List)
	propertyGroup.GET("/user", authRequired, propertyHandler.ListMine)
	propertyGroup.GET("/wishlist", authRequired, propertyHandler.GetWishlist)
	propertyGroup.GET("/:id", optionalAuth, propertyHandler.Get)
	propertyGroup.PUT("/:id", authRequired, propertyHandler.Update)
	propertyGroup.DELETE("/:id", authRequired, propertyHandler.Delete)
	propertyGroup.POST("/:id/wishlist", authRequired, propertyHandler.ToggleWishlist)

	userGroup := api.Group("/user")
	userGroup.PUT("/update-profile", authRequired, userHandler.UpdateProfile)
	userGroup.POST("/add-property", authRequired, userHandler.CreateProperty)

	return router, nil
}
