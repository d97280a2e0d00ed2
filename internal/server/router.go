// Package server wires handlers and middleware into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finwallet/internal/docs" // swagger docs
	"finwallet/internal/handlers"
	"finwallet/internal/middleware"
)

// Dependencies are the handlers and auth settings the router needs.
type Dependencies struct {
	Auth        *handlers.AuthHandler
	Wallet      *handlers.WalletHandler
	Category    *handlers.CategoryHandler
	Transaction *handlers.TransactionHandler
	Rate        *handlers.RateHandler
	Audit       *handlers.AuditHandler

	Tokens          *middleware.TokenManager
	PipelineAPIKeys []string
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", deps.Auth.Login)

	// Rate pipeline
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(deps.PipelineAPIKeys...))
	pipeline.POST("/rates", deps.Rate.UpsertRates)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(deps.Tokens.AuthMiddleware())

	protected.GET("/user", deps.Auth.GetProfile)
	protected.PUT("/user", deps.Auth.UpdateProfile)
	protected.GET("/rates", deps.Rate.ListRates)
	protected.GET("/audit-logs", deps.Audit.ListAuditLogs)

	wallets := protected.Group("/wallets")
	wallets.GET("", deps.Wallet.ListWallets)
	wallets.POST("", deps.Wallet.CreateWallet)
	wallets.GET("/:id", deps.Wallet.GetWallet)
	wallets.PUT("/:id", deps.Wallet.UpdateWallet)
	wallets.DELETE("/:id", deps.Wallet.DeleteWallet)
	wallets.GET("/:id/transactions", deps.Transaction.GetWalletTransactions)

	transactions := protected.Group("/transactions")
	transactions.POST("", deps.Transaction.CreateTransaction)
	transactions.DELETE("/:id", deps.Transaction.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.POST("", deps.Category.CreateCategory)
	categories.GET("", deps.Category.GetUserCategories)
	categories.GET("/:id", deps.Category.GetCategoryByID)
	categories.PUT("/:id", deps.Category.UpdateCategory)
	categories.DELETE("/:id", deps.Category.DeleteCategory)

	return router
}
