package routes

import (
	"clinicpro-backend/config"
	"clinicpro-backend/controllers"
	"clinicpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.PUT("/profile", controllers.UpdateProfile)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.GET("/:id/treatments", controllers.GetCustomerTreatments)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Course definition routes
		courses := api.Group("/courses")
		{
			courses.POST("", controllers.CreateCourse)
			courses.GET("", controllers.GetCourses)
			courses.POST("/redeem", controllers.RedeemCourse)
			courses.GET("/:id", controllers.GetCourse)
			courses.PUT("/:id", controllers.UpdateCourse)
			courses.DELETE("/:id", controllers.DeleteCourse)
		}

		// Inventory routes
		inventory := api.Group("/inventory")
		{
			inventory.POST("", controllers.CreateInventoryItem)
			inventory.GET("", controllers.GetInventory)
			inventory.GET("/:id", controllers.GetInventoryItem)
			inventory.PUT("/:id", controllers.UpdateInventoryItem)
			inventory.DELETE("/:id", controllers.DeleteInventoryItem)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Point of sale
		api.POST("/checkout", controllers.Checkout)
		api.GET("/transactions", controllers.GetTransactions)
		api.DELETE("/transactions/:id", controllers.DeleteTransaction)

		// Treatment history
		api.GET("/treatments", controllers.GetTreatments)

		// Snapshot and schema state
		api.GET("/status", controllers.GetStatus)
		api.POST("/refresh", controllers.RefreshSnapshot)
		api.GET("/export", controllers.ExportData)

		// Dashboard
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
