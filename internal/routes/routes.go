package routes

import (
	"github.com/RamChoudhary007/ScholarGuide/internal/config"
	"github.com/RamChoudhary007/ScholarGuide/internal/handlers"
	"github.com/RamChoudhary007/ScholarGuide/internal/middleware"
	"github.com/RamChoudhary007/ScholarGuide/internal/repository"
	"github.com/RamChoudhary007/ScholarGuide/internal/services"
	notifyws "github.com/RamChoudhary007/ScholarGuide/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentProfileRepository(db)
	mentorRepo := repository.NewMentorProfileRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	notificationHub := notifyws.NewHub()
	go notificationHub.Run()

	profileService := services.NewProfileService(userRepo, studentRepo, mentorRepo)
	matchmakingService := services.NewMatchmakingService(mentorRepo)
	appointmentService := services.NewAppointmentService(db, appointmentRepo, studentRepo, mentorRepo, notificationHub)
	reviewService := services.NewReviewService(db, reviewRepo, appointmentRepo, studentRepo, mentorRepo)

	authHandler := handlers.NewAuthHandler(db, userRepo, studentRepo, mentorRepo, profileService, storageService, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(studentRepo, mentorRepo, profileService)
	directoryHandler := handlers.NewDirectoryHandler(userRepo, studentRepo, mentorRepo, matchmakingService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	notificationHandler := handlers.NewNotificationHandler(notificationHub, cfg.JWTSecret)

	api := app.Group("/api")
	authRequired := middleware.AuthRequired(cfg.JWTSecret)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Put("/me", authRequired, authHandler.UpdateMe)
	auth.Post("/me/photo", authRequired, authHandler.UploadPhoto)

	api.Get("/users", directoryHandler.ListUsers)

	students := api.Group("/students")
	students.Get("", directoryHandler.ListStudents)
	students.Get("/me", authRequired, profileHandler.GetMyStudentProfile)
	students.Put("/me", authRequired, profileHandler.UpdateMyStudentProfile)
	students.Get("/:id", directoryHandler.GetStudent)

	mentors := api.Group("/mentors")
	mentors.Get("", directoryHandler.ListMentors)
	mentors.Get("/me", authRequired, profileHandler.GetMyMentorProfile)
	mentors.Put("/me", authRequired, profileHandler.UpdateMyMentorProfile)
	mentors.Get("/recommended", authRequired, directoryHandler.GetRecommendedMentors)
	mentors.Get("/:id", directoryHandler.GetMentor)
	mentors.Get("/:id/reviews", reviewHandler.ListForMentor)

	appointments := api.Group("/appointments", authRequired)
	appointments.Post("", appointmentHandler.Create)
	appointments.Get("", appointmentHandler.List)
	appointments.Put("/accept/:id", appointmentHandler.Accept)
	appointments.Put("/reject/:id", appointmentHandler.Reject)
	appointments.Put("/complete/:id", appointmentHandler.Complete)
	appointments.Put("/cancel/:id", appointmentHandler.Cancel)

	api.Post("/reviews", authRequired, reviewHandler.Create)

	api.Use("/v1/ws", notificationHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(notificationHandler.HandleWebSocket))

	RegisterDocsRoutes(app, cfg)
}
