package routes

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/domain/assistant"
	"github.com/KallebyX/visitecacapava/internal/app/domain/auth"
	"github.com/KallebyX/visitecacapava/internal/app/domain/badge"
	"github.com/KallebyX/visitecacapava/internal/app/domain/gamification"
	"github.com/KallebyX/visitecacapava/internal/app/domain/hotels"
	"github.com/KallebyX/visitecacapava/internal/app/domain/poi"
	"github.com/KallebyX/visitecacapava/internal/app/domain/trail"
	"github.com/KallebyX/visitecacapava/internal/app/middleware"
	"github.com/KallebyX/visitecacapava/internal/app/models"
	"github.com/KallebyX/visitecacapava/internal/pkg/config"
)

// AppHandlers aggregates all domain handlers wired by Setup.
type AppHandlers struct {
	Auth         *auth.Handler
	Gamification *gamification.Handler
	POI          *poi.Handler
	Trail        *trail.Handler
	Badge        *badge.Handler
	Hotels       *hotels.Handler
	Assistant    *assistant.Handler
}

// Setup builds every repository, service and handler and registers the
// HTTP routes on the given engine.
func Setup(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *AppHandlers {
	jwtConfig := auth.JWTConfig{
		SecretKey:       cfg.Auth.JWTSecret,
		TokenExpiration: cfg.Auth.TokenExpiration,
	}

	authRepo := auth.NewRepositoryImpl(dbPool, logger)
	authService := auth.NewServiceImpl(authRepo, jwtConfig, logger)

	poiRepo := poi.NewRepositoryImpl(dbPool, logger)
	poiService := poi.NewServiceImpl(poiRepo, logger)

	trailRepo := trail.NewRepositoryImpl(dbPool, logger)
	trailService := trail.NewServiceImpl(trailRepo, logger)

	badgeRepo := badge.NewRepositoryImpl(dbPool, logger)
	badgeService := badge.NewServiceImpl(badgeRepo, logger)

	hotelsRepo := hotels.NewRepositoryImpl(dbPool, logger)
	hotelsService := hotels.NewServiceImpl(hotelsRepo, logger)

	gamificationRepo := gamification.NewRepositoryImpl(dbPool, logger)
	gamificationService := gamification.NewServiceImpl(gamificationRepo, logger)

	var generator assistant.TextGenerator
	if g := assistant.NewGeminiGenerator(context.Background(), cfg.Assistant.GeminiAPIKey, cfg.Assistant.Model, logger); g != nil {
		generator = g
	}
	assistantService := assistant.NewServiceImpl(generator, poiService, logger)

	handlers := &AppHandlers{
		Auth:         auth.NewHandler(authService, logger),
		Gamification: gamification.NewHandler(gamificationService, logger),
		POI:          poi.NewHandler(poiService, logger),
		Trail:        trail.NewHandler(trailService, logger),
		Badge:        badge.NewHandler(badgeService, logger),
		Hotels:       hotels.NewHandler(hotelsService, logger),
		Assistant:    assistant.NewHandler(assistantService, logger),
	}

	seedAdminAccount(authService, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	api.POST("/auth/register", handlers.Auth.Register)
	api.POST("/auth/login", handlers.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtConfig))
	{
		authed.GET("/pois", handlers.POI.List)
		authed.GET("/pois/:id", handlers.POI.Get)
		authed.GET("/routes", handlers.Trail.List)
		authed.GET("/routes/:id", handlers.Trail.Get)
		authed.GET("/badges", handlers.Badge.ListBadges)
		authed.GET("/challenges", handlers.Badge.ListChallenges)
		authed.GET("/leaderboard", handlers.Gamification.GetLeaderboard)
		authed.GET("/me", handlers.Gamification.GetProfile)

		authed.POST("/checkin", middleware.RequireRole(models.RoleTourist), handlers.Gamification.CheckIn)

		authed.POST("/assistant/chat", handlers.Assistant.Chat)
		authed.POST("/assistant/itinerary", handlers.Assistant.Itinerary)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtConfig), middleware.RequireRole(models.RoleSecretaria))
	{
		admin.POST("/pois", handlers.POI.Create)
		admin.PUT("/pois/:id", handlers.POI.Update)
		admin.DELETE("/pois/:id", handlers.POI.Delete)

		admin.POST("/routes", handlers.Trail.Create)
		admin.PUT("/routes/:id", handlers.Trail.Update)
		admin.DELETE("/routes/:id", handlers.Trail.Delete)

		admin.POST("/challenges", handlers.Badge.CreateChallenge)
		admin.PUT("/challenges/:id", handlers.Badge.UpdateChallenge)
		admin.DELETE("/challenges/:id", handlers.Badge.DeleteChallenge)

		admin.POST("/users/:id/points", handlers.Gamification.AdjustPoints)
		admin.GET("/users/:id/points/audit", handlers.Gamification.GetPointsAuditLog)

		admin.GET("/analytics/hotel", handlers.Hotels.Analytics)
	}

	hotel := api.Group("/hotel")
	hotel.Use(middleware.AuthMiddleware(jwtConfig), middleware.RequireRole(models.RoleHotel))
	{
		hotel.POST("/guests", handlers.Hotels.RegisterGuest)
		hotel.GET("/guests", handlers.Hotels.ListGuests)
	}

	return handlers
}

// seedAdminAccount provisions the secretariat account from the environment
// so a fresh deployment always has an administrator.
func seedAdminAccount(authService auth.Service, logger *zap.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account seed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := authService.EnsureAdminAccount(ctx, email, password); err != nil {
		logger.Error("Failed to seed admin account", zap.Error(err))
		return
	}
	logger.Info("Admin account ready", zap.String("email", email))
}
