package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vamos-sujal/ai-glow-fit/internal/ai"
	"github.com/vamos-sujal/ai-glow-fit/internal/config"
	"github.com/vamos-sujal/ai-glow-fit/internal/handlers"
	"github.com/vamos-sujal/ai-glow-fit/internal/middleware"
	"github.com/vamos-sujal/ai-glow-fit/internal/repository"
	"github.com/vamos-sujal/ai-glow-fit/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	planRepo := repository.NewPlanRepository(db)

	clientOpts := []ai.ClientOption{}
	if cfg.AIGatewayURL != "" {
		clientOpts = append(clientOpts, ai.WithBaseURL(cfg.AIGatewayURL))
	}
	aiClient := ai.NewClient(cfg.AIGatewayKey, clientOpts...)

	planService := services.NewPlanService(aiClient)
	motivationService := services.NewMotivationService(aiClient)

	var synthesizer services.Synthesizer
	if cfg.TTSBackend == "local" {
		synthesizer = services.NewLocalSynthesizer()
	} else {
		synthesizer = services.NewElevenLabsSynthesizer(cfg.ElevenLabsKey)
	}

	imageService := services.NewImageService(services.NewRemoteImageGenerator(cfg.ImageAPIURL, cfg.ImageAPIKey))

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	planHandler := handlers.NewPlanHandler(planService, motivationService, planRepo, profileRepo, synthesizer, imageService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	profiles := authProtected.Group("/profiles")
	profiles.Get("", profileHandler.ListProfiles)
	profiles.Post("", profileHandler.CreateProfile)
	profiles.Get("/:id", profileHandler.GetProfile)
	profiles.Put("/:id", profileHandler.UpdateProfile)
	profiles.Delete("/:id", profileHandler.DeleteProfile)
	profiles.Post("/:id/plan", planHandler.GeneratePlan)
	profiles.Post("/:id/plan/save", planHandler.SavePlan)
	profiles.Get("/:id/plan", planHandler.GetLatestPlan)

	plans := authProtected.Group("/plans")
	plans.Post("/:id/narration", planHandler.Narrate)
	plans.Get("/:id/export", planHandler.ExportPlan)

	authProtected.Get("/motivation", planHandler.RefreshMotivation)
	authProtected.Post("/images", planHandler.GenerateImage)
}
