package app

import (
	"database/sql"
	"fmt"
	"log"

	"financetracker/internal/config"
	"financetracker/internal/handlers"
	"financetracker/internal/pdf"
	"financetracker/internal/repositories"
	"financetracker/internal/routes"
	"financetracker/internal/services"
	"financetracker/internal/storage"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "financetracker/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	if err := storage.RunMigrations(cfg.Database.DSN); err != nil {
		log.Fatal("Ошибка миграций: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	verifRepo := repositories.NewEmailVerificationRepository(db)
	txRepo := repositories.NewTransactionRepository(db)

	// === Services ===
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	registrationService := services.NewRegistrationService(userRepo, verifRepo, emailService, authService)
	userService := services.NewUserService(userRepo)
	transactionService := services.NewTransactionService(txRepo)
	statisticsService := services.NewStatisticsService(txRepo)

	reportGen := pdf.NewReportGenerator("assets/fonts/DejaVuSans.ttf")

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	registerHandler := handlers.NewRegisterHandler(registrationService)
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService, userService, reportGen)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authService,
		authHandler,
		registerHandler,
		userHandler,
		transactionHandler,
		statisticsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
