package router

import (
	"log"

	"github.com/campushire/placement-api/config"
	"github.com/campushire/placement-api/database"
	"github.com/campushire/placement-api/handlers"
	admin_handlers "github.com/campushire/placement-api/handlers/admin"
	application_handlers "github.com/campushire/placement-api/handlers/application"
	auth_handlers "github.com/campushire/placement-api/handlers/auth"
	company_handlers "github.com/campushire/placement-api/handlers/company"
	job_handlers "github.com/campushire/placement-api/handlers/job"
	notification_handlers "github.com/campushire/placement-api/handlers/notification"
	student_handlers "github.com/campushire/placement-api/handlers/student"
	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services"
	"github.com/campushire/placement-api/services/storage"
	"github.com/campushire/placement-api/utils"
	"github.com/campushire/placement-api/utils/auth"
	"github.com/campushire/placement-api/utils/cache"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Services groups the long-lived services the router wires into
// handlers. The app layer also hands them to the cron manager.
type Services struct {
	Jobs          *services.JobService
	Placements    *services.PlacementService
	Notifications *services.NotificationService
	Reports       *services.ReportService
	Resumes       *services.ResumeService
}

// BuildServices constructs the service layer from configuration
func BuildServices(db *gorm.DB, getEnv *config.EnviornmentVariable, redisCache *cache.RedisCache) *Services {
	var store *storage.Client
	if getEnv.STORAGE_ACCESS_KEY != "" && getEnv.STORAGE_BUCKET != "" {
		var err error
		store, err = storage.NewClient(storage.Config{
			AccessKey: getEnv.STORAGE_ACCESS_KEY,
			SecretKey: getEnv.STORAGE_SECRET_KEY,
			Bucket:    getEnv.STORAGE_BUCKET,
			Region:    getEnv.STORAGE_REGION,
			Endpoint:  getEnv.STORAGE_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize object storage: %v. Resume uploads will be disabled.", err)
		}
	} else {
		log.Println("Object storage not configured, resume uploads disabled")
	}

	notifications := services.NewNotificationService(db)

	return &Services{
		Jobs:          services.NewJobService(db, redisCache),
		Placements:    services.NewPlacementService(db, notifications, getEnv.ENFORCE_DEADLINES),
		Notifications: notifications,
		Reports:       services.NewReportService(db),
		Resumes:       services.NewResumeService(db, store),
	}
}

// SetupRoutes wires middleware, handlers, and routes onto the app
func SetupRoutes(app *fiber.App, store database.Storage, getEnv *config.EnviornmentVariable, svc *Services, redisCache *cache.RedisCache) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        getEnv.JWT_EXPIRY,
		RefreshExpiry: getEnv.REFRESH_EXPIRY,
		Issuer:        getEnv.JWT_ISSUER,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	} else {
		log.Println("Warning: Redis unavailable, brute force protection disabled")
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	studentHandler := student_handlers.NewStudentHandler(db, svc.Placements, svc.Resumes)
	companyHandler := company_handlers.NewCompanyHandler(db)
	jobHandler := job_handlers.NewJobHandler(db, svc.Jobs, svc.Placements)
	applicationHandler := application_handlers.NewApplicationHandler(db, svc.Placements, svc.Resumes)
	notificationHandler := notification_handlers.NewNotificationHandler(svc.Notifications)
	adminHandler := admin_handlers.NewAdminHandler(db, svc.Notifications, svc.Reports)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   getEnv.RATE_LIMIT_WINDOW,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// Profile routes
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.Me)
	profileGroup.Put("/", authHandler.UpdateMe)

	// Student routes
	students := api.Group("/students", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleStudent))
	students.Get("/me", studentHandler.GetMyProfile)
	students.Put("/me", studentHandler.UpdateMyProfile)
	students.Post("/me/resume", studentHandler.UploadResume)
	students.Get("/me/applications", studentHandler.MyApplications)

	// Company routes
	companies := api.Group("/companies", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleCompany))
	companies.Get("/me", companyHandler.GetMyCompany)
	companies.Put("/me", companyHandler.UpdateMyCompany)

	// Job routes
	jobs := api.Group("/jobs")
	jobs.Get("/", jobHandler.ListJobs)
	jobs.Get("/active", jobHandler.ActiveJobs)
	jobs.Get("/eligible", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleStudent), jobHandler.EligibleJobs)
	jobs.Get("/:id", jobHandler.GetJob)
	jobs.Post("/", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleCompany), jobHandler.CreateJob)
	jobs.Put("/:id", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleCompany, model.RoleAdmin), jobHandler.UpdateJob)
	jobs.Post("/:id/close", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleCompany, model.RoleAdmin), jobHandler.CloseJob)

	// Applications
	jobs.Post("/:id/apply", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleStudent), applicationHandler.Apply)
	jobs.Get("/:id/applications", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleCompany, model.RoleAdmin), applicationHandler.ListJobApplications)

	applications := api.Group("/applications", authMiddleware.Required())
	applications.Get("/:id", applicationHandler.GetApplication)
	applications.Get("/:id/resume", applicationHandler.DownloadResume)
	applications.Put("/:id/status", authMiddleware.RequireRole(model.RoleCompany, model.RoleAdmin), applicationHandler.UpdateStatus)

	// Notification routes
	notifications := api.Group("/notifications", authMiddleware.Required())
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.RequireAdmin())
	admin.Get("/companies", adminHandler.ListCompanies)
	admin.Post("/companies/:id/approve", middleware.AdminAuditLog(db, "company_approve", "companies"), adminHandler.ApproveCompany)
	admin.Post("/companies/:id/reject", middleware.AdminAuditLog(db, "company_reject", "companies"), adminHandler.RejectCompany)

	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Delete("/users/:id", middleware.AdminAuditLog(db, "user_delete", "users"), adminHandler.DeleteUser)

	admin.Get("/reports/funnel", adminHandler.FunnelReport)
	admin.Get("/reports/branches", adminHandler.BranchReport)
	admin.Get("/reports/companies", adminHandler.CompanyReport)
	admin.Get("/reports/trend", adminHandler.TrendReport)
}
