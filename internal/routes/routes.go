package routes

import (
	"github.com/gin-gonic/gin"

	"bankportal/internal/handlers"
	"bankportal/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	verifyHandler *handlers.VerifyHandler,
	authHandler *handlers.AuthHandler,
	cardHandler *handlers.CardHandler,
	reportHandler *handlers.ReportHandler,
	sendPerMinute float64,
) *gin.Engine {

	// ---- public (portal)
	r.POST("/send-code", middleware.RateLimit(sendPerMinute), verifyHandler.SendCode)
	r.POST("/verify-code", verifyHandler.VerifyCode)
	r.POST("/admin/login", authHandler.Login)

	// ---- operators (JWT)
	admin := r.Group("/admin", middleware.AuthMiddleware())
	{
		admin.GET("/users", cardHandler.ListUsers)

		cards := admin.Group("/cards")
		{
			cards.POST("/requests", cardHandler.CreateRequest)
			cards.POST("/status", cardHandler.UpdateStatus)
			cards.POST("/activate", cardHandler.ActivateCard)
			cards.POST("/migrate", cardHandler.Migrate)
		}

		admin.GET("/reports/cards", reportHandler.CardReport)
	}

	return r
}
