package main

import (
	"log"
	"os"

	_ "github.com/waynemwendwa/TMS-sub000/api/swagger" // swagger docs
	"github.com/waynemwendwa/TMS-sub000/internal/database"
	"github.com/waynemwendwa/TMS-sub000/internal/handler"
	"github.com/waynemwendwa/TMS-sub000/internal/middleware"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"
	"github.com/waynemwendwa/TMS-sub000/internal/service"
	"github.com/waynemwendwa/TMS-sub000/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Tender Management API
// @version         1.0
// @description     Construction procurement backend: orders, approvals, suppliers, inventory and project documents.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	orderService := service.NewOrderService(orderRepo, projectRepo, auditRepo, txManager)
	projectService := service.NewProjectService(projectRepo, userRepo, auditRepo, txManager, db)
	approvalService := service.NewApprovalService(db, userRepo, wsHub)
	templateService := service.NewTemplateService(db)
	supplierService := service.NewSupplierService(db)
	inventoryService := service.NewInventoryService(inventoryRepo, auditRepo, txManager)
	planService := service.NewPlanService(db)
	documentService := service.NewDocumentService(db, uploadDir)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	orderHandler := handler.NewOrderHandler(orderService)
	projectHandler := handler.NewProjectHandler(projectService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	templateHandler := handler.NewTemplateHandler(templateService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	planHandler := handler.NewPlanHandler(planService)
	documentHandler := handler.NewDocumentHandler(documentService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	projectHandler.RegisterRoutes(api)
	approvalHandler.RegisterRoutes(api)
	templateHandler.RegisterRoutes(api)
	supplierHandler.RegisterRoutes(api)
	inventoryHandler.RegisterRoutes(api)
	planHandler.RegisterRoutes(api)
	documentHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
