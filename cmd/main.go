package main

import (
	"net/http"

	"warehouse-service/internal/handler"
	mid "warehouse-service/internal/middleware"
	"warehouse-service/pkg/config"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/jwtutil"
	"warehouse-service/pkg/logger"
	"warehouse-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; env vars may also be set by the environment
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting warehouse-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Login is the only open API route
	e.POST("/api/auth/login", handler.Login)

	// Everything else requires an admin bearer token
	api := e.Group("/api", mid.AuthMiddleware)

	products := api.Group("/products")
	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProduct)
	products.POST("", handler.CreateProduct)
	products.PUT("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)

	categories := api.Group("/categories")
	categories.GET("", handler.ListCategories)
	categories.GET("/:id", handler.GetCategory)
	categories.POST("", handler.CreateCategory)
	categories.PUT("/:id", handler.UpdateCategory)
	categories.DELETE("/:id", handler.DeleteCategory)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", handler.ListSuppliers)
	suppliers.GET("/:id", handler.GetSupplier)
	suppliers.POST("", handler.CreateSupplier)
	suppliers.PUT("/:id", handler.UpdateSupplier)
	suppliers.DELETE("/:id", handler.DeleteSupplier)

	customers := api.Group("/customers")
	customers.GET("", handler.ListCustomers)
	customers.GET("/:id", handler.GetCustomer)
	customers.POST("", handler.CreateCustomer)
	customers.PUT("/:id", handler.UpdateCustomer)
	customers.DELETE("/:id", handler.DeleteCustomer)

	locations := api.Group("/warehouse-locations")
	locations.GET("", handler.ListLocations)
	locations.GET("/:id", handler.GetLocation)
	locations.POST("", handler.CreateLocation)
	locations.PUT("/:id", handler.UpdateLocation)
	locations.DELETE("/:id", handler.DeleteLocation)

	users := api.Group("/users")
	users.GET("", handler.ListUsers)
	users.GET("/:id", handler.GetUser)
	users.POST("", handler.CreateUser)
	users.PUT("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)

	inventory := api.Group("/inventory")
	inventory.GET("", handler.ListInventory)
	inventory.GET("/low-stock/items", handler.LowStockItems)
	inventory.GET("/:id", handler.GetInventory)
	inventory.POST("", handler.CreateInventory)
	inventory.PUT("/:id", handler.UpdateInventory)
	inventory.DELETE("/:id", handler.DeleteInventory)

	transactions := api.Group("/inventory-transactions")
	transactions.GET("", handler.ListTransactions)
	transactions.GET("/report/summary", handler.TransactionReportSummary)
	transactions.GET("/inventory/:inventoryId", handler.TransactionsByInventory)
	transactions.GET("/:id", handler.GetTransaction)
	transactions.POST("", handler.CreateTransaction)

	orders := api.Group("/orders")
	orders.GET("", handler.ListOrders)
	orders.GET("/report/summary", handler.OrderReportSummary)
	orders.GET("/:id", handler.GetOrder)
	orders.POST("", handler.CreateOrder)
	orders.PUT("/:id", handler.UpdateOrder)
	orders.DELETE("/:id", handler.DeleteOrder)

	sales := api.Group("/sales")
	sales.GET("", handler.ListSales)
	sales.GET("/report/summary", handler.SalesReportSummary)
	sales.GET("/:id", handler.GetSale)
	sales.POST("", handler.CreateSale)
	sales.PUT("/:id", handler.UpdateSale)
	sales.DELETE("/:id", handler.DeleteSale)

	// Start server
	if err := e.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
