package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"financetracker/internal/handlers"
	"financetracker/internal/middleware"
	"financetracker/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	registerHandler *handlers.RegisterHandler,
	userHandler *handlers.UserHandler,
	transactionHandler *handlers.TransactionHandler,
	statisticsHandler *handlers.StatisticsHandler,
) *gin.Engine {

	// ---- public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/register/request", registerHandler.Request)
	r.POST("/register/confirm", registerHandler.Confirm)
	r.POST("/token", authHandler.Token)

	// ---- protected
	auth := r.Group("/", middleware.AuthMiddleware(authService))

	auth.GET("/profile", userHandler.GetProfile)
	auth.PUT("/profile", userHandler.UpdateProfile)

	auth.GET("/statistics", statisticsHandler.Get)
	auth.GET("/statistics/export", statisticsHandler.Export)

	tx := auth.Group("/transactions")
	{
		tx.POST("", transactionHandler.Create)
		tx.GET("", transactionHandler.List)
		tx.PUT("/:id", transactionHandler.Update)
		tx.DELETE("/:id", transactionHandler.Delete)
	}

	return r
}
