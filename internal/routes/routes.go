package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/config"
	"github.com/elitehands/elitehands-api/internal/handlers"
	infraRepo "github.com/elitehands/elitehands-api/internal/infra/repository"
	"github.com/elitehands/elitehands-api/internal/mailer"
	"github.com/elitehands/elitehands-api/internal/media"
	"github.com/elitehands/elitehands-api/internal/middleware"
	"github.com/elitehands/elitehands-api/internal/sessions"
	ucBooking "github.com/elitehands/elitehands-api/internal/usecase/booking"
	ucReset "github.com/elitehands/elitehands-api/internal/usecase/passwordreset"
	ucReview "github.com/elitehands/elitehands-api/internal/usecase/review"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	marketplaceRepo := infraRepo.NewMarketplaceGormRepository(db)
	resetRepo := infraRepo.NewResetGormRepository(db)

	sessionStore := sessions.New(cfg)
	mailService := mailer.FromConfig(cfg)
	mediaStore := media.NewStore(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(marketplaceRepo, auditDispatcher)
	updateBookingUC := ucBooking.NewUpdateBooking(marketplaceRepo, auditDispatcher)
	assignStaffUC := ucBooking.NewAssignStaff(marketplaceRepo, auditDispatcher)
	unassignStaffUC := ucBooking.NewUnassignStaff(marketplaceRepo, auditDispatcher)

	createReviewUC := ucReview.NewCreateReview(marketplaceRepo, auditDispatcher)

	requestResetUC := ucReset.NewRequestReset(resetRepo, mailService)
	verifyOTPUC := ucReset.NewVerifyOTP(resetRepo)
	confirmResetUC := ucReset.NewConfirmReset(resetRepo, sessionStore)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessionStore, mediaStore, auditDispatcher)
	resetHandler := handlers.NewPasswordResetHandler(requestResetUC, verifyOTPUC, confirmResetUC)
	serviceHandler := handlers.NewServiceHandler(db)
	bookingHandler := handlers.NewBookingHandler(db, createBookingUC, updateBookingUC, auditDispatcher)
	assignmentHandler := handlers.NewAssignmentHandler(assignStaffUC, unassignStaffUC)
	reviewHandler := handlers.NewReviewHandler(db, createReviewUC, auditDispatcher)
	notificationHandler := handlers.NewNotificationHandler(db)
	messageHandler := handlers.NewMessageHandler(db)
	leaveHandler := handlers.NewLeaveHandler(db, auditDispatcher)
	staffHandler := handlers.NewStaffHandler(db, auditDispatcher)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher)

	requireAuth := middleware.AuthMiddleware(cfg, sessionStore)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg, sessionStore)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH + PASSWORD RESET
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.POST("/auth/password/reset", resetHandler.Request)
		api.POST("/auth/password/reset/verify-otp", resetHandler.Verify)
		api.POST("/auth/password/reset/confirm", resetHandler.Confirm)

		// ------------------------------
		// PUBLIC CATALOG + REVIEWS FEED
		// ------------------------------
		api.GET("/services/categories", serviceHandler.ListCategories)
		api.GET("/services", serviceHandler.ListServices)
		api.GET("/services/:id", serviceHandler.GetService)

		api.GET("/reviews", optionalAuth, reviewHandler.List)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(requireAuth)
		{
			secured.POST("/auth/staff/register", authHandler.RegisterStaff)
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/auth/profile", authHandler.Me)
			secured.PUT("/auth/profile", authHandler.UpdateProfile)
			secured.POST("/auth/profile/avatar", authHandler.UploadAvatar)

			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PUT("/bookings/:id", bookingHandler.Update)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)
			secured.GET("/bookings/:id/assignments", bookingHandler.ListAssignments)

			secured.POST("/reviews", reviewHandler.Create)
			secured.GET("/reviews/:id", reviewHandler.Get)
			secured.PUT("/reviews/:id", reviewHandler.Update)

			secured.GET("/notifications", notificationHandler.List)
			secured.POST("/notifications/:id/mark-read", notificationHandler.MarkRead)
			secured.POST("/notifications/mark-all-read", notificationHandler.MarkAllRead)

			secured.GET("/messages", messageHandler.List)
			secured.POST("/messages", messageHandler.Create)
			secured.GET("/messages/:id", messageHandler.Get)
			secured.PUT("/messages/:id", messageHandler.Update)
			secured.DELETE("/messages/:id", messageHandler.Delete)
			secured.POST("/messages/:id/mark-read", messageHandler.MarkRead)

			// ------------------------------
			// STAFF SURFACE
			// ------------------------------
			secured.GET("/staff", staffHandler.List)
			secured.GET("/staff/assigned", staffHandler.ListAssigned)
			secured.GET("/staff/assignments", staffHandler.ListMyAssignments)
			secured.GET("/staff/leave-requests", leaveHandler.ListMine)
			secured.POST("/staff/leave-requests", leaveHandler.Create)
			secured.GET("/staff/:id", staffHandler.Get)
			secured.PUT("/staff/:id", staffHandler.Update)
			secured.DELETE("/staff/:id", staffHandler.Deactivate)
			secured.POST("/staff/:id/status", staffHandler.ToggleStatus)

			// ------------------------------
			// ADMIN SURFACE
			// ------------------------------
			admin := secured.Group("/admin")
			{
				admin.POST("/bookings/:id/assign", assignmentHandler.Assign)
				admin.DELETE("/bookings/:id/assign/:staffID", assignmentHandler.Unassign)

				admin.GET("/reviews", reviewHandler.ListAll)
				admin.PATCH("/reviews/:id/publish", reviewHandler.SetPublished)

				admin.GET("/leave-requests", leaveHandler.ListAll)
				admin.POST("/leave-requests/:id/decision", leaveHandler.Decide)

				admin.GET("/settings", adminHandler.GetSettings)
				admin.PUT("/settings", adminHandler.UpdateSettings)
				admin.GET("/analytics", adminHandler.Analytics)
			}
		}
	}
}
