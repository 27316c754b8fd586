package main

import (
	"context"
	"crumbs/config"
	"crumbs/controllers"
	"crumbs/infra"
	"crumbs/middlewares"
	"crumbs/models"
	"crumbs/repositories"
	"crumbs/services"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, tokenDB *gorm.DB, cfg *config.Config, logger *slog.Logger) (*gin.Engine, services.IAuthService) {
	userRepository := repositories.NewUserRepository(db)
	inventoryRepository := repositories.NewInventoryRepository(db)
	recipeRepository := repositories.NewRecipeRepository(db)
	tokenRepository := repositories.NewTokenRepository(tokenDB)

	authService := services.NewAuthService(userRepository, tokenRepository, cfg.SecretKey, cfg.TokenTTL, logger)
	authController := controllers.NewAuthController(authService, logger)

	inventoryService := services.NewInventoryService(inventoryRepository, logger)
	inventoryController := controllers.NewInventoryController(inventoryService, logger)

	dashboardService := services.NewDashboardService(inventoryRepository, recipeRepository, userRepository, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	adminService := services.NewAdminService(userRepository, logger)
	adminController := controllers.NewAdminController(adminService, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logger))
	r.Use(corsMiddleware(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRouter := r.Group("/auth")
	inventoryRouter := r.Group("/inventory", middlewares.AuthMiddleware(authService))
	dashboardRouter := r.Group("/dashboard", middlewares.AuthMiddleware(authService))
	adminRouter := r.Group("/admin", middlewares.AuthMiddleware(authService), middlewares.RequireRole(models.RoleAdmin, logger))

	authRouter.POST("/signup", authController.Signup)
	authRouter.POST("/login", authController.Login)
	authRouter.POST("/logout", authController.Logout)

	inventoryRouter.GET("", inventoryController.FindAll)
	inventoryRouter.GET("/unit-cost", inventoryController.UnitCostPreview)
	inventoryRouter.GET("/:id", inventoryController.FindById)
	inventoryRouter.POST("", inventoryController.Create)
	inventoryRouter.PUT("/:id", inventoryController.Update)
	inventoryRouter.POST("/:id/stock", inventoryController.AddStock)
	inventoryRouter.DELETE("/:id", inventoryController.Delete)

	dashboardRouter.GET("", dashboardController.GetSummary)
	dashboardRouter.GET("/stats", dashboardController.GetStats)
	dashboardRouter.GET("/lowest-stock", dashboardController.GetLowestStockItems)

	adminRouter.GET("/users", adminController.ListUsers)
	adminRouter.PUT("/users/:id", adminController.UpdateUser)
	adminRouter.PUT("/users/:id/role", adminController.SetRole)
	adminRouter.POST("/users/:id/ban", adminController.BanUser)
	adminRouter.POST("/users/:id/unban", adminController.UnbanUser)
	adminRouter.DELETE("/users/:id", adminController.DeleteUser)
	adminRouter.POST("/admins", middlewares.RequireRole(models.RoleSuperAdmin, logger), adminController.CreateAdmin)

	return r, authService
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if len(cfg.CORSOrigins) == 0 {
		return cors.Default()
	}
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AddAllowHeaders("Authorization", "X-Request-ID")
	corsConfig.AddExposeHeaders("X-Request-ID")
	return cors.New(corsConfig)
}

// initDB opens both databases and brings their schemas up to date. An in-memory database always
// starts empty, so it is migrated regardless of AUTO_MIGRATE.
func initDB(cfg *config.Config) (*gorm.DB, *gorm.DB, error) {
	db, err := infra.SetupDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate || cfg.DB.Name == "" {
		if err := infra.Migrate(db); err != nil {
			return nil, nil, err
		}
	}

	tokenDB, err := infra.SetupTokenDB(cfg.TokenDBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := infra.MigrateTokens(tokenDB); err != nil {
		return nil, nil, err
	}
	return db, tokenDB, nil
}

func bootstrap(ctx context.Context, cfg *config.Config, tokenDB *gorm.DB, authService services.IAuthService, logger *slog.Logger) error {
	purged, err := repositories.NewTokenRepository(tokenDB).CleanExpiredTokens(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		logger.Info("purged expired blacklisted tokens", slog.Int64("count", purged))
	}

	if cfg.SuperAdmin.Email == "" {
		return nil
	}
	return authService.EnsureSuperAdmin(ctx, cfg.SuperAdmin.Name, cfg.SuperAdmin.Email, cfg.SuperAdmin.Password)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := infra.Initialize(cfg)

	db, tokenDB, err := initDB(cfg)
	if err != nil {
		logger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r, authService := setupRouter(db, tokenDB, cfg, logger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	err = bootstrap(startupCtx, cfg, tokenDB, authService, logger)
	cancelStartup()
	if err != nil {
		logger.Error("failed to bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("server exited")
}
