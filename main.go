package main

import (
	"fmt"
	"log"
	"os"
	"snapagenda-backend/config"
	"snapagenda-backend/controllers"
	"snapagenda-backend/models"
	"snapagenda-backend/routes"
	"snapagenda-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Professional{},
		&models.Service{},
		&models.Appointment{},
		&models.FinancialTransaction{},
		&models.NotificationLog{},
	)

	controllers.Init(config.DB)
}

func main() {
	notifier := services.NewNotificationService(config.DB)
	scheduler := services.NewReminderScheduler(config.DB, notifier)
	scheduler.Start()

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
