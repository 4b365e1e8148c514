package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/launchforge/launchwizard-backend/internal/handlers"
  "github.com/launchforge/launchwizard-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware      *middleware.AuthMiddleware
  RateLimitMiddleware *middleware.RateLimitMiddleware
  ProgressHandler     *handlers.ProgressHandler
  FeatureLockHandler  *handlers.FeatureLockHandler
  RewardsHandler      *handlers.RewardsHandler
  AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  allowOrigins := cfg.AllowOrigins
  if len(allowOrigins) == 0 {
    allowOrigins = []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    }
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || Protected ||
// ===============
  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  api.Use(cfg.RateLimitMiddleware.Limit())
  // Progress
  api.GET("/progress", cfg.ProgressHandler.GetProgress)
  api.POST("/progress/initialize", cfg.ProgressHandler.InitializeProgress)
  api.PUT("/progress/step", cfg.ProgressHandler.SetMainWizardStep)
  api.PUT("/progress/current", cfg.ProgressHandler.SetCurrentMiniWizard)
  api.POST("/progress/complete", cfg.ProgressHandler.CompleteMiniWizard)
  // Feature locks
  api.GET("/features", cfg.FeatureLockHandler.GetFeatureLocks)
  api.POST("/features/initialize", cfg.FeatureLockHandler.InitializeFeatureLocks)
  api.GET("/features/:id/unlocked", cfg.FeatureLockHandler.IsFeatureUnlocked)
  api.POST("/features/refresh", cfg.FeatureLockHandler.RefreshUnlockedFeatures)
  // Rewards
  api.GET("/rewards", cfg.RewardsHandler.GetRewards)
  api.POST("/rewards/initialize", cfg.RewardsHandler.InitializeRewards)
  api.POST("/rewards/xp", cfg.RewardsHandler.AddXP)
  api.GET("/rewards/level", cfg.RewardsHandler.GetLevel)
  api.POST("/rewards/achievements", cfg.RewardsHandler.AddAchievement)
  api.POST("/rewards/badges", cfg.RewardsHandler.AddBadge)
  api.POST("/rewards/streak/increment", cfg.RewardsHandler.IncrementStreak)
  api.POST("/rewards/streak/reset", cfg.RewardsHandler.ResetStreak)

  return router
}
