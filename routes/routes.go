package routes

import (
	"os"
	"strings"

	"snapagenda-backend/config"
	"snapagenda-backend/controllers"
	"snapagenda-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public self-service booking, no authentication.
	public := r.Group("/public/booking/:uid")
	{
		public.GET("", controllers.GetBookingPage)
		public.GET("/slots", controllers.GetBookingSlots)
		public.POST("", controllers.SubmitBooking)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	api.Use(controllers.SubscriptionGate())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.POST("/quick", controllers.QuickAddClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		professionals := api.Group("/professionals")
		{
			professionals.POST("", controllers.CreateProfessional)
			professionals.GET("", controllers.GetProfessionals)
			professionals.GET("/:id", controllers.GetProfessional)
			professionals.PUT("/:id", controllers.UpdateProfessional)
			professionals.DELETE("/:id", controllers.DeleteProfessional)
		}

		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.POST("/:id/confirm", controllers.ConfirmAppointment)
			appointments.POST("/:id/cancel", controllers.CancelAppointment)
			appointments.POST("/:id/reminder", controllers.SendAppointmentReminder)
			appointments.PUT("/:id/status", controllers.SetAppointmentStatus)
		}

		finance := api.Group("/finance")
		{
			finance.GET("/transactions", controllers.GetTransactions)
			finance.GET("/summary", controllers.GetLedgerSummary)
			finance.POST("/transactions/:id/payment", controllers.RecordPayment)
			finance.POST("/transactions/:id/revert", controllers.RevertPayment)
			finance.POST("/transactions/:id/mark-paid", controllers.MarkExpensePaid)
			finance.DELETE("/transactions/:id", controllers.DeleteTransaction)
			finance.POST("/expenses", controllers.CreateExpense)
			finance.PUT("/expenses/:id", controllers.UpdateExpense)
		}

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/hours", controllers.UpdateBusinessHours)
			profile.PUT("/rules", controllers.UpdateBookingRules)
			profile.PUT("/online-booking", controllers.UpdateOnlineBooking)
			profile.PUT("/templates", controllers.UpdateNotificationTemplates)
		}

		api.GET("/dashboard", controllers.GetDashboard)
	}

	return r
}
