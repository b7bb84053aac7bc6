package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/atelierhq/atelier/internal/server/http/handlers"
	"github.com/atelierhq/atelier/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	memberHandler := handlers.NewMemberHandler(facade)
	rewardHandler := handlers.NewRewardHandler(facade)
	contractHandler := handlers.NewContractHandler(facade)

	api := engine.Group("/api")

	checkout := api.Group("/checkout")
	checkout.POST("/orders", orderHandler.Checkout)
	checkout.GET("/orders/:number", orderHandler.Track)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/orders", orderHandler.List)
	userAuth.POST("/orders/claim", orderHandler.Claim)
	userAuth.GET("/membership", memberHandler.Profile)
	userAuth.GET("/rewards", rewardHandler.List)
	userAuth.POST("/rewards/redeem", rewardHandler.Redeem)
	userAuth.POST("/rewards/birthday", rewardHandler.BirthdayGift)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade))
	admin.PATCH("/rewards/:id/status", rewardHandler.Transition)
	admin.POST("/members/:id/accrue", memberHandler.Accrue)
	admin.POST("/contracts", contractHandler.Create)
	admin.GET("/contracts/:id", contractHandler.Get)

	return engine
}
