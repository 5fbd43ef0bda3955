package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KelvinnC/cosc310project-sub000/internal/api/handlers"
	"github.com/KelvinnC/cosc310project-sub000/internal/api/middleware"
	"github.com/KelvinnC/cosc310project-sub000/internal/config"
	"github.com/KelvinnC/cosc310project-sub000/internal/repository"
	"github.com/KelvinnC/cosc310project-sub000/internal/service"
	"github.com/KelvinnC/cosc310project-sub000/pkg/logger"
	"github.com/KelvinnC/cosc310project-sub000/pkg/ratelimit"
)

// SetupRouter API 라우터 설정
func SetupRouter(cfg *config.Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 전역 미들웨어
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Rate limiting (REDIS_URL이 설정되면 Redis 기반, 아니면 in-memory)
	if cfg.RedisURL != "" {
		limiter, err := ratelimit.NewRedisRateLimiter(ratelimit.RedisRateLimiterConfig{
			URL:          cfg.RedisURL,
			DefaultLimit: 120,
			DefaultTTL:   time.Minute,
		})
		if err != nil {
			logger.Fatal("Failed to connect to redis rate limiter", "error", err)
		}
		router.Use(middleware.RedisRateLimit(middleware.RedisRateLimitConfig{
			Limiter: limiter,
			Limit:   120,
			Window:  time.Minute,
		}))
	} else {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Capacity:   120,
			RefillRate: 2,
		}))
	}

	// Repository 초기화
	userRepo := repository.NewUserRepository(cfg.DataDir)
	reviewRepo := repository.NewReviewRepository(cfg.DataDir)
	battleRepo := repository.NewBattleRepository(cfg.DataDir)

	// Service 초기화
	userService := service.NewUserService(userRepo)
	reviewService := service.NewReviewService(reviewRepo)
	selector := service.NewPairSelector(battleRepo, reviewRepo, service.NewRandPicker(time.Now().UnixNano()))
	battleService := service.NewBattleService(battleRepo, reviewService, selector, cfg.BattlePoolSize)

	// Handler 초기화
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	battleHandler := handlers.NewBattleHandler(battleService)

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
		}

		// Review routes
		reviews := v1.Group("/reviews")
		{
			reviews.GET("", reviewHandler.ListReviews)
			reviews.GET("/my", middleware.Auth(cfg), reviewHandler.GetMyReviews)
			reviews.GET("/:id", reviewHandler.GetReview)
			reviews.POST("", middleware.Auth(cfg), reviewHandler.CreateReview)
			reviews.PUT("/:id", middleware.Auth(cfg), reviewHandler.UpdateReview)
			reviews.DELETE("/:id", middleware.Auth(cfg), reviewHandler.DeleteReview)
		}

		// Battle routes
		battles := v1.Group("/battles")
		{
			battles.POST("", middleware.Auth(cfg), battleHandler.CreateBattle)
			battles.GET("/:battleId", battleHandler.GetBattle)
			battles.POST("/:battleId/votes", middleware.Auth(cfg), battleHandler.SubmitVote)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.Auth(cfg))
		{
			users.GET("/me", userHandler.GetCurrentUser)
		}
	}

	return router
}
