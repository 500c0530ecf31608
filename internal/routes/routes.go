package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/victordupreez0/studentgigs-backend/internal/config"
	"github.com/victordupreez0/studentgigs-backend/internal/handlers"
	"github.com/victordupreez0/studentgigs-backend/internal/middleware"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
	"github.com/victordupreez0/studentgigs-backend/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, log *logrus.Logger) {
	userRepo := repository.NewUserRepository(db)
	studentProfileRepo := repository.NewStudentProfileRepository(db)
	employerProfileRepo := repository.NewEmployerProfileRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	notificationService := services.NewNotificationService(notificationRepo, log)

	authHandler := handlers.NewAuthHandler(
		db,
		userRepo,
		studentProfileRepo,
		employerProfileRepo,
		cfg.JWTSecret,
	)
	onboardingHandler := handlers.NewOnboardingHandler(studentProfileRepo, employerProfileRepo)
	profileService := services.NewProfileService(studentProfileRepo, employerProfileRepo)
	profileHandler := handlers.NewProfileHandler(profileService, studentProfileRepo, employerProfileRepo, storageService)
	jobService := services.NewJobService(db, jobRepo, userRepo, notificationService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationService := services.NewApplicationService(db, applicationRepo, jobRepo, userRepo, notificationService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	chatService := services.NewChatService(db, conversationRepo, messageRepo, userRepo, jobRepo, notificationService)
	chatHandler := handlers.NewChatHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	students := authProtected.Group("/students")
	students.Post("/onboarding", onboardingHandler.StudentOnboarding)
	students.Get("/profile", profileHandler.GetStudentProfile)
	students.Put("/profile", profileHandler.UpdateStudentProfile)
	students.Post("/profile/avatar", profileHandler.UploadStudentAvatar)

	employers := authProtected.Group("/employers")
	employers.Post("/onboarding", onboardingHandler.EmployerOnboarding)
	employers.Get("/profile", profileHandler.GetEmployerProfile)
	employers.Put("/profile", profileHandler.UpdateEmployerProfile)
	employers.Post("/profile/avatar", profileHandler.UploadEmployerAvatar)

	jobs := authProtected.Group("/jobs")
	jobs.Post("", jobHandler.CreateJob)
	jobs.Get("", jobHandler.ListJobs)
	jobs.Get("/:id", jobHandler.GetJob)
	jobs.Put("/:id", jobHandler.UpdateJob)
	jobs.Post("/:id/cancel", jobHandler.CancelJob)
	jobs.Post("/:id/applications", applicationHandler.Apply)
	jobs.Get("/:id/applications", applicationHandler.ListForJob)
	jobs.Post("/:id/completion/request", jobHandler.RequestCompletion)
	jobs.Post("/:id/completion/accept", jobHandler.AcceptCompletion)
	jobs.Post("/:id/completion/deny", jobHandler.DenyCompletion)

	applications := authProtected.Group("/applications")
	applications.Get("/mine", applicationHandler.ListMine)
	applications.Post("/:id/accept", applicationHandler.Accept)
	applications.Post("/:id/reject", applicationHandler.Reject)
	applications.Post("/:id/withdraw", applicationHandler.Withdraw)

	conversations := authProtected.Group("/conversations")
	conversations.Get("", chatHandler.ListConversations)
	conversations.Post("", chatHandler.CreateConversation)
	conversations.Get("/:id/messages", chatHandler.GetMessages)
	conversations.Post("/:id/messages", chatHandler.SendMessage)
	conversations.Post("/:id/read", chatHandler.MarkConversationRead)

	notifications := authProtected.Group("/notifications")
	notifications.Get("", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
}
