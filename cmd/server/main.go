package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/task-tracker-api/internal/auth"
	"github.com/tasknest/task-tracker-api/internal/config"
	"github.com/tasknest/task-tracker-api/internal/constants"
	"github.com/tasknest/task-tracker-api/internal/database"
	"github.com/tasknest/task-tracker-api/internal/handlers"
	"github.com/tasknest/task-tracker-api/internal/middleware"
	"github.com/tasknest/task-tracker-api/internal/repository"
	"github.com/tasknest/task-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Token service
	jwtService := auth.NewService(cfg.JWTSecret, constants.TokenExpiry)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, jwtService)
	userService := services.NewUserService(userRepo)
	statusService := services.NewStatusService(statusRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, userRepo, commentRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	statusHandler := handlers.NewStatusHandler(statusService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/forgot-pass", authHandler.ForgotPassword)
			authRoutes.POST("/reset-pass", authHandler.ResetPassword)
			authRoutes.POST("/change-pass", middleware.RequireAuth(jwtService), authHandler.ChangePassword)
			authRoutes.POST("/first-change-pass", middleware.RequireAuth(jwtService), authHandler.FirstChangePassword)
		}

		// User routes (single reads for everyone, the rest admin only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(jwtService))
		{
			users.GET("", middleware.RequireAdmin(), userHandler.ListUsers)
			users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
			users.PATCH("/:id", middleware.RequireAdmin(), userHandler.PatchUser)
			users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
		}

		// Status registry routes (reads for everyone, writes admin only)
		statuses := api.Group("/status")
		statuses.Use(middleware.RequireAuth(jwtService))
		{
			statuses.GET("", statusHandler.ListStatuses)
			statuses.GET("/:idOrCode", statusHandler.GetStatus)
			statuses.POST("", middleware.RequireAdmin(), statusHandler.CreateStatus)
			statuses.PUT("/:idOrCode", middleware.RequireAdmin(), statusHandler.UpdateStatus)
			statuses.PATCH("/:idOrCode", middleware.RequireAdmin(), statusHandler.PatchStatus)
			statuses.DELETE("/:idOrCode", middleware.RequireAdmin(), statusHandler.DeleteStatus)
		}

		// Task routes (reads and PATCH for everyone, the rest admin only)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(jwtService))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/status/:status", taskHandler.GetTasksByStatus)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
			tasks.PUT("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
			tasks.PATCH("/:id", taskHandler.PatchTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
