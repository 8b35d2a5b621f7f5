package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vytara-server/internal/config"
	"vytara-server/internal/directory"
	"vytara-server/internal/handlers"
	"vytara-server/internal/middleware"
	"vytara-server/internal/workspace"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, accounts *workspace.Accounts, registry *workspace.Registry, cfg *config.Config, logger *zap.Logger) {
	authHandler := handlers.NewAuthHandler(accounts, registry, cfg, logger)
	appointmentHandler := handlers.NewAppointmentHandler(logger)
	calendarHandler := handlers.NewCalendarHandler(cfg, logger)
	profileHandler := handlers.NewProfileHandler(logger)
	documentHandler := handlers.NewDocumentHandler(logger)
	insuranceHandler := handlers.NewInsuranceHandler()
	directoryHandler := handlers.NewDirectoryHandler(directory.New(), logger)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Logout only needs a valid token; the workspace may already be gone.
	session := router.Group("/api/v1/auth")
	session.Use(middleware.AuthMiddleware(cfg))
	session.POST("/logout", authHandler.Logout)

	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg), middleware.WorkspaceMiddleware(registry))
	{
		private.GET("/auth/me", authHandler.Me)

		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/date/:date", appointmentHandler.GetAppointmentsByDate)
			appointmentRoutes.GET("/:id/visit", appointmentHandler.GetVisit)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		calendarRoutes := private.Group("/calendar")
		{
			calendarRoutes.GET("", calendarHandler.GetCalendar)
			calendarRoutes.GET("/export.ics", calendarHandler.Export)
			calendarRoutes.POST("/prev", calendarHandler.PrevMonth)
			calendarRoutes.POST("/next", calendarHandler.NextMonth)
			calendarRoutes.POST("/today", calendarHandler.Today)
			calendarRoutes.POST("/click", calendarHandler.Click)
			calendarRoutes.POST("/close", calendarHandler.Close)

			editorRoutes := calendarRoutes.Group("/editor")
			{
				editorRoutes.POST("/edit", calendarHandler.BeginEdit)
				editorRoutes.POST("/cancel", calendarHandler.CancelEdit)
				editorRoutes.POST("/delete", calendarHandler.DeleteAppointment)
				editorRoutes.POST("/save", calendarHandler.SaveAppointment)
			}
		}

		profileRoutes := private.Group("/profile")
		{
			profileRoutes.GET("", profileHandler.GetProfile)
			profileRoutes.PUT("", profileHandler.UpdateProfile)
			profileRoutes.POST("/sections/:section/validate", profileHandler.ValidateSection)
			profileRoutes.PUT("/emergency-contacts", profileHandler.UpdateEmergencyContacts)
			profileRoutes.DELETE("/emergency-contacts/:index", profileHandler.DeleteEmergencyContact)
			profileRoutes.GET("/doctors", profileHandler.GetDoctors)
		}

		documentRoutes := private.Group("/documents")
		{
			documentRoutes.GET("", documentHandler.GetDocuments)
			documentRoutes.POST("", documentHandler.CreateDocument)
			documentRoutes.POST("/summary", documentHandler.Summarize)
			documentRoutes.DELETE("/:id", documentHandler.DeleteDocument)
		}

		directoryRoutes := private.Group("/directory")
		{
			directoryRoutes.GET("/:kind", directoryHandler.Search)
			directoryRoutes.POST("/:kind/:id/book", directoryHandler.Book)
		}

		insuranceRoutes := private.Group("/insurance")
		{
			insuranceRoutes.GET("", insuranceHandler.GetPolicies)
			insuranceRoutes.POST("", insuranceHandler.CreatePolicy)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}
