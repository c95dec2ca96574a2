// Package server assembles the HTTP router.
package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"financehub/internal/catalog"
	_ "financehub/internal/docs" // Import swagger docs
	apperrors "financehub/internal/errors"
	"financehub/internal/handlers"
	"financehub/internal/middleware"
	"financehub/internal/services"
	"financehub/internal/validator"
)

// Options configures New.
type Options struct {
	DB         *gorm.DB
	Catalog    *catalog.Catalog
	CORSOrigin string
	// Quiet drops request logging, for tests.
	Quiet bool
}

var jsonOnce sync.Once

// New wires services, handlers and middleware into a gin engine serving the
// API under /api.
func New(opts Options) *gin.Engine {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	db := opts.DB

	validator.Register()
	// Amounts travel as JSON numbers, matching what the dashboard sends.
	jsonOnce.Do(func() { decimal.MarshalJSONWithoutQuotes = true })

	// Initialize services
	categoryService := services.NewCategoryService(db, cat)
	userService := services.NewUserService(db, categoryService)
	transactionService := services.NewTransactionService(db, cat)
	transferService := services.NewTransferService(db, cat)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, transferService)

	router := gin.New()
	router.Use(gin.Recovery())
	if !opts.Quiet {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigin))

	router.NoRoute(func(c *gin.Context) {
		middleware.WriteError(c, apperrors.ErrNotFound)
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	api.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend API is running!"})
	})
	api.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth and profile
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/profile/:userId", authHandler.GetProfile)
	api.GET("/me", middleware.RequireAuth(), authHandler.Me)

	// Categories
	api.GET("/categories", categoryHandler.GetDefaults)
	api.GET("/palette", categoryHandler.GetPalette)
	api.GET("/user-categories/:userId", categoryHandler.GetUserCategories)
	api.POST("/user-categories", categoryHandler.ReplaceUserCategories)
	api.POST("/user-categories/:userId/default", categoryHandler.SeedDefaults)

	// Transactions. A bearer token is optional; when present, category labels
	// are checked against the caller's categories.
	tasks := api.Group("/tasks")
	tasks.Use(middleware.OptionalAuth())
	tasks.POST("", transactionHandler.CreateTransaction)
	tasks.GET("", transactionHandler.ListTransactions)
	tasks.GET("/summary", transactionHandler.GetSummary)
	tasks.GET("/export", transactionHandler.ExportTransactions)
	tasks.POST("/import", transactionHandler.ImportTransactions)
	tasks.GET("/:id", transactionHandler.GetTransaction)
	tasks.PUT("/:id", transactionHandler.UpdateTransaction)
	tasks.DELETE("/:id", transactionHandler.DeleteTransaction)

	return router
}
