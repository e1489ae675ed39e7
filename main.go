package main

import (
	"fmt"
	"log"
	"os"

	_ "eventflow/docs"
	"eventflow/internal/auth"
	"eventflow/internal/handlers"
	"eventflow/internal/models"
	"eventflow/internal/storage"
	"eventflow/internal/tasks"
	"eventflow/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Учёт посещаемости мероприятий
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Event{}, &models.Participant{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Admin-User", "X-Admin-Pass"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/refresh", handlers.RefreshToken)
		authGroup.GET("/me", auth.AuthMiddleware(), handlers.Me)
	}

	// Публичные маршруты участников: без токена, по коду участника.
	public := r.Group("/public")
	{
		public.GET("/events", handlers.ListActiveEventsHandler)
		public.POST("/events/:id/participants", handlers.RegisterParticipantHandler)
		public.POST("/events/:id/participants/login", handlers.ParticipantLoginHandler)
		public.GET("/participants/:id", handlers.GetParticipantHandler)
		public.POST("/participants/:id/checkout", handlers.SelfCheckoutHandler)
	}

	api := r.Group("/api", auth.AuthMiddleware(), auth.ApprovedOnly())
	{
		api.POST("/events", handlers.CreateEventHandler)
		api.GET("/events", handlers.ListEventsHandler)
		api.GET("/events/:id", handlers.GetEventHandler)
		api.PUT("/events/:id/checkout-mode", handlers.ToggleCheckoutHandler)
		api.PUT("/events/:id/status/:status", handlers.SetEventStatusHandler)
		api.DELETE("/events/:id", handlers.DeleteEventHandler)
		api.GET("/events/:id/report.csv", handlers.EventReportHandler)

		api.POST("/events/:id/console", handlers.OpenConsoleHandler)
		api.POST("/console/:id/scan", handlers.ConsoleScanHandler)
		api.GET("/console/:id", handlers.ConsoleStateHandler)
		api.DELETE("/console/:id", handlers.CloseConsoleHandler)

		api.DELETE("/participants/:id", handlers.DeleteParticipantHandler)
	}

	admin := r.Group("/api/admin", auth.AdminOnly())
	{
		admin.GET("/managers", handlers.ListManagersHandler)
		admin.PUT("/managers/:id/approval", handlers.SetManagerApprovalHandler)
	}

	events := r.Group("/api/events")
	{
		events.GET("/:id/ws", ws.EventWebSocketHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
