package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"clinicpro-backend/config"
	"clinicpro-backend/controllers"
	"clinicpro-backend/models"
	"clinicpro-backend/routes"
	"clinicpro-backend/services"
	"clinicpro-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	// The domain tables are created by scripts/schema.sql, not migrated here,
	// so a missing schema stays detectable. Only the auth table is managed.
	config.DB.AutoMigrate(&models.User{})
}

func main() {
	data := store.New(config.DB)
	if err := data.Refresh(context.Background()); err != nil {
		if errors.Is(err, store.ErrSchemaMissing) {
			log.Println("Database setup required: run scripts/schema.sql against DB_URL")
		} else {
			log.Printf("Initial data load failed: %v", err)
		}
	}
	controllers.UseStore(data)

	reminders := services.NewReminderService(data)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
