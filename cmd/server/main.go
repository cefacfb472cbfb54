package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lucira_back_end/internal/cache"
	"lucira_back_end/internal/config"
	"lucira_back_end/internal/handlers"
	"lucira_back_end/internal/middleware"
	"lucira_back_end/internal/msg91"
	"lucira_back_end/internal/nector"
	"lucira_back_end/internal/routes"
	"lucira_back_end/internal/service"
	"lucira_back_end/internal/shopify"
)

func main() {
	config.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("❌ Configuration invalide : %v", err)
	}
	log.Printf("✅ Configuration chargée (boutique %s)", cfg.Shop)

	// Cache partagé si Redis est configuré, sinon map en mémoire
	var store cache.Store
	if cfg.RedisHost != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisHost, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		store = redisStore
	} else {
		log.Println("⚠️ REDIS_HOST non configuré — cache en mémoire locale")
		store = cache.NewMemoryStore()
	}

	// Clients amont
	shopifyClient := shopify.NewClient(cfg)
	otpClient := msg91.NewClient(cfg)
	nectorClient := nector.NewClient(cfg)

	// Services
	collectionSvc := service.NewCollectionService(shopifyClient, store)
	authSvc := service.NewAuthService(shopifyClient, otpClient)
	cartSvc := service.NewCartService(shopifyClient)
	reviewSvc := service.NewReviewService(nectorClient, store)

	r := gin.Default()
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r,
		handlers.NewAuthHandler(authSvc),
		handlers.NewCartHandler(cartSvc),
		handlers.NewCollectionHandler(collectionSvc),
		handlers.NewReviewHandler(reviewSvc),
	)

	log.Println("🚀 Serveur Lucira lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Serveur arrêté : %v", err)
	}
}
