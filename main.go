package main

import (
	"context"
	"log"

	api "internmail-backend/cmd/api"
	authdomain "internmail-backend/internal/auth/domain"
	authRepo "internmail-backend/internal/auth/repository"
	authUsecase "internmail-backend/internal/auth/usecase"
	emaildomain "internmail-backend/internal/email/domain"
	emailRepo "internmail-backend/internal/email/repository"
	emailUsecase "internmail-backend/internal/email/usecase"
	internshipdomain "internmail-backend/internal/internship/domain"
	internshipRepo "internmail-backend/internal/internship/repository"
	internshipUsecase "internmail-backend/internal/internship/usecase"
	"internmail-backend/pkg/ai"
	"internmail-backend/pkg/config"
	"internmail-backend/pkg/database"
	"internmail-backend/pkg/gmail"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&emaildomain.EmailSnapshot{},
		&emaildomain.SystemState{},
		&internshipdomain.InternshipRecord{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	emailRepository := emailRepo.NewEmailRepository(db)
	stateRepo := emailRepo.NewSystemStateRepository(db)
	internshipRepository := internshipRepo.NewGormInternshipRepository(db)

	// Initialize Gmail service
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize AI completer (gemini, ollama or gemini-with-ollama-fallback)
	completer, err := ai.NewCompleter(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", cfg.AIProvider)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)
	internshipUsecaseInstance := internshipUsecase.NewInternshipUsecase(internshipRepository, cfg.TrackerDedupeByEmail)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(emailRepository, stateRepo, userRepo, internshipUsecaseInstance, gmailService, completer, cfg)

	// Background sync (disabled when SYNC_INTERVAL is unset)
	scheduler := emailUsecase.NewSyncScheduler(emailUsecaseInstance, userRepo, cfg.SyncInterval)
	scheduler.Start(context.Background())

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, emailUsecaseInstance, internshipUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
