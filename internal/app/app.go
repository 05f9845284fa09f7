package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"bankportal/internal/config"
	"bankportal/internal/handlers"
	"bankportal/internal/middleware"
	"bankportal/internal/pdf"
	"bankportal/internal/repositories"
	"bankportal/internal/routes"
	"bankportal/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bankportal/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	verifRepo := repositories.NewVerificationRepository(db)
	userRepo := repositories.NewUserRepository(db)
	cardRepo := repositories.NewCardRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegram := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	verifService := services.NewVerificationService(verifRepo)
	verifService.CodeTTL = time.Duration(cfg.Verification.CodeTTLMinutes) * time.Minute
	verifService.MaxAttempts = cfg.Verification.MaxAttempts

	cardService := services.NewCardService(userRepo, cardRepo, emailService, telegram)

	reportGen := pdf.NewReportGenerator(cfg.Files.RootDir)

	// === Handlers ===
	verifyHandler := handlers.NewVerifyHandler(verifService, emailService, cfg.Verification.ExposeCode)
	authHandler := handlers.NewAuthHandler(cfg.Auth)
	cardHandler := handlers.NewCardHandler(cardService)
	reportHandler := handlers.NewReportHandler(cardService, reportGen)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	// the portal endpoints answer 405, not 404, on a wrong verb
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(405, gin.H{"success": false, "error": "method not allowed"})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		verifyHandler,
		authHandler,
		cardHandler,
		reportHandler,
		cfg.RateLimit.SendPerMinute,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
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
