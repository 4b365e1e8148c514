package main

import (
  "fmt"
  "os"
  "github.com/launchforge/launchwizard-backend/internal/app"
  "github.com/launchforge/launchwizard-backend/internal/clients/redis"
  "github.com/launchforge/launchwizard-backend/internal/db"
  "github.com/launchforge/launchwizard-backend/internal/handlers"
  "github.com/launchforge/launchwizard-backend/internal/logger"
  "github.com/launchforge/launchwizard-backend/internal/middleware"
  "github.com/launchforge/launchwizard-backend/internal/repos"
  "github.com/launchforge/launchwizard-backend/internal/server"
  "github.com/launchforge/launchwizard-backend/internal/services"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Config
  log.Info("Loading configuration from main...")
  cfg, err := app.LoadConfig(log)
  if err != nil {
    log.Fatal("Failed to load configuration", "error", err)
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  wizardProgressRepo := repos.NewWizardProgressRepo(thePG, log)
  featureLockRepo := repos.NewFeatureLockRepo(thePG, log)
  rewardProfileRepo := repos.NewRewardProfileRepo(thePG, log)
  xpEventRepo := repos.NewXPEventRepo(thePG, log)
  achievementRepo := repos.NewAchievementRepo(thePG, log)
  badgeRepo := repos.NewBadgeRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  progressService := services.NewProgressService(thePG, log, wizardProgressRepo)
  featureLockService := services.NewFeatureLockService(thePG, log, featureLockRepo)
  rewardsService := services.NewRewardsService(thePG, log, rewardProfileRepo, xpEventRepo, achievementRepo, badgeRepo)
  progressionService := services.NewProgressionService(thePG, log, progressService, rewardsService, featureLockService)

  // Rate limiter (optional: missing redis means no limiting, not no service)
  var windowCounter middleware.WindowCounter
  rateLimiter, err := redis.NewRateLimiter(log, cfg.RedisAddr)
  if err != nil {
    log.Warn("Redis rate limiter unavailable, requests will not be limited", "error", err)
  } else {
    defer rateLimiter.Close()
    windowCounter = rateLimiter
  }

  // Middleware
  log.Info("Setting up Middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, cfg.JWTSecretKey)
  rateLimitMiddleware := middleware.NewRateLimitMiddleware(log, windowCounter, cfg.RateLimitWindow, cfg.RateLimitMax)

  // Handlers
  log.Info("Setting up Handlers from main...")
  progressHandler := handlers.NewProgressHandler(progressService, progressionService)
  featureLockHandler := handlers.NewFeatureLockHandler(featureLockService, rewardsService)
  rewardsHandler := handlers.NewRewardsHandler(rewardsService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware:      authMiddleware,
    RateLimitMiddleware: rateLimitMiddleware,
    ProgressHandler:     progressHandler,
    FeatureLockHandler:  featureLockHandler,
    RewardsHandler:      rewardsHandler,
    AllowOrigins:        cfg.AllowOrigins,
  })

  log.Info("Starting server", "port", cfg.Port)
  if err := router.Run(":" + cfg.Port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
