package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CoptEgypt/StMark-Aghapy/config"
	"github.com/CoptEgypt/StMark-Aghapy/controllers"
	"github.com/CoptEgypt/StMark-Aghapy/middleware"
	"github.com/CoptEgypt/StMark-Aghapy/routes"
	"github.com/CoptEgypt/StMark-Aghapy/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[Checkout] Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("[Checkout] Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// One client for the life of the process, injected everywhere
	square := services.NewSquareClient(cfg.SquareAccessToken)
	catalog := services.NewCatalogResolver(square, cfg.SquareItemID, logger)
	customers := services.NewCustomerResolver(square, logger)
	checkout := services.NewCheckoutService(square, catalog, customers, cfg.SquareLocationID, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimitMiddleware())

	cc := controllers.NewCheckoutController(checkout, logger)
	routes.RegisterCheckoutRoutes(r, cc)

	logger.Info("checkout service running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[Checkout] Server failed:", err)
	}
}
