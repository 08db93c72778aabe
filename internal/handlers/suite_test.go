package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/tasknest/task-tracker-api/internal/auth"
	"github.com/tasknest/task-tracker-api/internal/constants"
	"github.com/tasknest/task-tracker-api/internal/database"
	"github.com/tasknest/task-tracker-api/internal/middleware"
	"github.com/tasknest/task-tracker-api/internal/models"
	"github.com/tasknest/task-tracker-api/internal/repository"
	"github.com/tasknest/task-tracker-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// baseSuite wires the full router against an in-memory SQLite database so
// handler tests cover routing, auth middleware and persistence together.
type baseSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	jwt    *auth.Service
}

// SetupTest runs before each test
func (s *baseSuite) SetupTest() {
	var err error

	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	err = s.db.AutoMigrate(
		&models.User{},
		&models.StatusMaster{},
		&models.Task{},
		&models.TeamMember{},
		&models.Comment{},
	)
	s.Require().NoError(err)

	database.SetDB(s.db)

	s.jwt = auth.NewService("test-secret", constants.TokenExpiry)

	userRepo := repository.NewUserRepository(s.db)
	statusRepo := repository.NewStatusRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)
	commentRepo := repository.NewCommentRepository(s.db)

	authService := services.NewAuthService(userRepo, s.jwt)
	userService := services.NewUserService(userRepo)
	statusService := services.NewStatusService(statusRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, userRepo, commentRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService, authService)
	statusHandler := NewStatusHandler(statusService)
	taskHandler := NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	api := s.router.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/forgot-pass", authHandler.ForgotPassword)
	authRoutes.POST("/reset-pass", authHandler.ResetPassword)
	authRoutes.POST("/change-pass", middleware.RequireAuth(s.jwt), authHandler.ChangePassword)
	authRoutes.POST("/first-change-pass", middleware.RequireAuth(s.jwt), authHandler.FirstChangePassword)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth(s.jwt))
	users.GET("", middleware.RequireAdmin(), userHandler.ListUsers)
	users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
	users.PATCH("/:id", middleware.RequireAdmin(), userHandler.PatchUser)
	users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)

	statuses := api.Group("/status")
	statuses.Use(middleware.RequireAuth(s.jwt))
	statuses.GET("", statusHandler.ListStatuses)
	statuses.GET("/:idOrCode", statusHandler.GetStatus)
	statuses.POST("", middleware.RequireAdmin(), statusHandler.CreateStatus)
	statuses.PUT("/:idOrCode", middleware.RequireAdmin(), statusHandler.UpdateStatus)
	statuses.PATCH("/:idOrCode", middleware.RequireAdmin(), statusHandler.PatchStatus)
	statuses.DELETE("/:idOrCode", middleware.RequireAdmin(), statusHandler.DeleteStatus)

	tasks := api.Group("/tasks")
	tasks.Use(middleware.RequireAuth(s.jwt))
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/status/:status", taskHandler.GetTasksByStatus)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
	tasks.PUT("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
	tasks.PATCH("/:id", taskHandler.PatchTask)
	tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
}

// TearDownTest runs after each test
func (s *baseSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (s *baseSuite) createUser(name, email string, isAdmin bool) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.Require().NoError(err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		IsFirstLogin: false,
		Active:       true,
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *baseSuite) createStatus(code, name string) *models.StatusMaster {
	status := &models.StatusMaster{Code: code, Name: name, Active: true}
	s.Require().NoError(s.db.Create(status).Error)
	return status
}

func (s *baseSuite) createTask(name, statusCode string) *models.Task {
	task := &models.Task{Name: name, Status: statusCode}
	s.Require().NoError(s.db.Create(task).Error)
	return task
}

func (s *baseSuite) tokenFor(user *models.User) string {
	token, err := s.jwt.GenerateToken(user.ID, user.IsAdmin, user.Email)
	s.Require().NoError(err)
	return token
}

// do performs a request against the suite router, attaching the bearer
// token when one is given.
func (s *baseSuite) do(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *baseSuite) parseBody(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *baseSuite) dueDate(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	s.Require().NoError(err)
	return &t
}
