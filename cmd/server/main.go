package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Synapse-Social-Media/web-sub000/adapters/event"
	httpAdapter "github.com/Synapse-Social-Media/web-sub000/adapters/http"
	"github.com/Synapse-Social-Media/web-sub000/adapters/persistence"
	authUC "github.com/Synapse-Social-Media/web-sub000/internal/application/usecase/auth"
	searchUC "github.com/Synapse-Social-Media/web-sub000/internal/application/usecase/search"
	trendingUC "github.com/Synapse-Social-Media/web-sub000/internal/application/usecase/trending"
	"github.com/Synapse-Social-Media/web-sub000/internal/config"
	"github.com/Synapse-Social-Media/web-sub000/pkg/auth"
	"github.com/Synapse-Social-Media/web-sub000/pkg/logger"
	"github.com/Synapse-Social-Media/web-sub000/pkg/tracing"
)

func main() {
	fmt.Println("Start Synapse Search API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "synapse-search-api")
	if err != nil {
		appLogger.Warn("Tracing disabled: " + err.Error())
	} else {
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	postRepo := persistence.NewPostgresPostRepo(dbPool)
	relationshipRepo := persistence.NewPostgresRelationshipRepo(dbPool)
	trendingCache := persistence.NewRedisTrendingCache(redisClient, cfg.Search.TrendingCacheTTL, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(userRepo, postRepo, relationshipRepo, kafkaClient, appLogger)
	trendingUseCase := trendingUC.NewTrendingUseCase(postRepo, relationshipRepo, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	searchHandler := httpAdapter.NewSearchHandler(searchUseCase, trendingUseCase, trendingCache, appLogger)

	// Middleware
	optionalAuth := httpAdapter.OptionalAuthMiddleware(jwtSvc)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorHandlerMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/auth/login", authHandler.Login)

		searchRoutes := api.Group("/")
		searchRoutes.Use(optionalAuth)
		{
			searchRoutes.GET("/search", searchHandler.Search)
			searchRoutes.GET("/search/suggestions", searchHandler.Suggestions)
			searchRoutes.GET("/trending", searchHandler.Trending)
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
