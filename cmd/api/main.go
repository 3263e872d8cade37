package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"warehouse-backend/config"
	"warehouse-backend/internal/handler"
	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database (file store under the configured data dir)
	db, err := database.Open(database.Config{Dir: cfg.DataDir, File: cfg.DBFile})
	if err != nil {
		log.Fatal("Failed to open database. \n", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}, &model.ProductName{}); err != nil {
		log.Fatal("Failed to migrate database. \n", err)
	}

	// 3. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	productNameRepo := repository.NewProductNameRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	productService := service.NewProductService(productRepo, productNameRepo, db)
	txService := service.NewTransactionService(txRepo, db)

	productHandler := handler.NewProductHandler(productService)
	txHandler := handler.NewTransactionHandler(txService)
	statusHandler := handler.NewStatusHandler(db, cfg)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Management System v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 5. Routes
	api := app.Group("/api")

	api.Get("/", statusHandler.Home)
	api.Get("/health", statusHandler.Health)
	api.Get("/status", statusHandler.Status)

	// Product Routes (specific paths before the :id parameter)
	products := api.Group("/products")
	products.Get("/search", productHandler.SearchProducts)
	products.Get("/filter", productHandler.FilterByMaterialType)
	products.Get("/autocomplete/:field", productHandler.Autocomplete)
	products.Get("/lookup/by-name", productHandler.LookupByName)
	products.Get("/lookup/by-code", productHandler.LookupByCode)
	products.Get("/names", productHandler.GetProductNames)
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/:id", productHandler.GetProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	// Transaction Routes
	transactions := api.Group("/transactions")
	transactions.Get("/export", txHandler.ExportTransactions)
	transactions.Post("/upload", txHandler.Upload)
	transactions.Get("/", txHandler.GetTransactions)
	transactions.Post("/", txHandler.CreateTransaction)
	transactions.Get("/:id", txHandler.GetTransaction)
	transactions.Delete("/:id", txHandler.DeleteTransaction)

	// Static SPA assets when bundled alongside the binary
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		app.Static("/", cfg.StaticDir)
	}

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
