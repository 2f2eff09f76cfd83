package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/controllers"
	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	lessonController *controllers.LessonController,
	vehicleController *controllers.VehicleController,
	flagController *controllers.FlagController,
	licenseController *controllers.LicenseController,
	settingController *controllers.SettingController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		// Lookup data readable by every authenticated user
		authenticated.GET("/categories", vehicleController.GetAllCategories)

		// Flag evaluation for the calling user
		authenticated.GET("/flags/evaluate", flagController.Evaluate)
		authenticated.GET("/flags/mine", flagController.Mine)

		// Per-user preferences
		preferences := authenticated.Group("/preferences")
		{
			preferences.GET("", settingController.ListPreferences)
			preferences.GET("/:key", settingController.GetPreference)
			preferences.PUT("/:key", settingController.UpsertPreference)
		}

		// Dashboards, one per role
		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/admin",
				authMiddleware.RoleRequired(models.RoleSuperAdmin), dashboardController.Admin)
			dashboard.GET("/instructor",
				authMiddleware.RoleRequired(models.RoleInstructor), dashboardController.Instructor)
			dashboard.GET("/student",
				authMiddleware.RoleRequired(models.RoleStudent), dashboardController.Student)
		}

		// Student progress, visible to staff and the student's own account
		authenticated.GET("/students/:id/progress", userController.GetStudentProgress)

		// User management, admin only
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			users.POST("", userController.CreateUser)
			users.GET("", userController.ListUsers)
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.PATCH("/:id/active", userController.SetUserActive)
			users.DELETE("/:id", userController.DeleteUser)
		}

		// Lessons: staff schedule and transition, everyone may read
		lessons := authenticated.Group("/lessons")
		{
			lessons.GET("", lessonController.ListLessons)
			lessons.GET("/:id", lessonController.GetLesson)

			lessonsStaff := lessons.Group("")
			lessonsStaff.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin, models.RoleInstructor))
			{
				lessonsStaff.POST("", lessonController.CreateLesson)
				lessonsStaff.PUT("/:id", lessonController.UpdateLesson)
				lessonsStaff.PATCH("/:id/status", lessonController.UpdateLessonStatus)
			}
		}

		// Vehicles: everyone may read the fleet, admin manages it
		vehicles := authenticated.Group("/vehicles")
		{
			vehicles.GET("", vehicleController.ListVehicles)
			vehicles.GET("/:id", vehicleController.GetVehicle)

			vehiclesAdmin := vehicles.Group("")
			vehiclesAdmin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
			{
				vehiclesAdmin.POST("", vehicleController.CreateVehicle)
				vehiclesAdmin.PUT("/:id", vehicleController.UpdateVehicle)
				vehiclesAdmin.DELETE("/:id", vehicleController.DeleteVehicle)
			}
		}

		// Flag management, admin only
		flags := authenticated.Group("/flags")
		flags.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			flags.POST("", flagController.CreateFlag)
			flags.GET("", flagController.ListFlags)
			flags.GET("/:key", flagController.GetFlag)
			flags.PUT("/:key", flagController.UpdateFlag)
			flags.DELETE("/:key", flagController.DeleteFlag)
			flags.GET("/:key/overrides", flagController.ListOverrides)
			flags.PUT("/:key/overrides", flagController.SetOverride)
			flags.DELETE("/:key/overrides/:userId", flagController.DeleteOverride)
		}

		// Licensing, admin only
		licenses := authenticated.Group("/licenses")
		licenses.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			licenses.POST("/keys", licenseController.GenerateKey)
			licenses.GET("/keys", licenseController.ListKeys)
			licenses.POST("/activate", licenseController.ActivateKey)
			licenses.GET("/features", licenseController.ListFeatures)
			licenses.PATCH("/features/:key", licenseController.ToggleFeature)
		}

		// System settings and the configuration history, admin only
		settings := authenticated.Group("/settings")
		settings.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			settings.GET("", settingController.ListSettings)
			settings.GET("/history", settingController.ListHistory)
			settings.GET("/:key", settingController.GetSetting)
			settings.PUT("/:key", settingController.UpsertSetting)
			settings.DELETE("/:key", settingController.DeleteSetting)
		}
	}
}
