package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskpad/internal/auth"
	"taskpad/internal/cache"
	"taskpad/internal/config"
	"taskpad/internal/handler"
	"taskpad/internal/repository"
	"taskpad/internal/router"
	"taskpad/internal/service"
	"taskpad/internal/storage"
)

// @title Taskpad API
// @version 1.0
// @description Personal task manager: JWT-authenticated task CRUD with status and calendar filters.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	policy, err := storage.ParseCorruptPolicy(cfg.OnCorrupt)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()

	usersDoc := storage.NewDocument(cfg.UsersFile(), policy)
	tasksDoc := storage.NewDocument(cfg.TasksFile(), policy)

	userRepo := repository.NewUserRepository(usersDoc)
	taskRepo := repository.NewTaskRepository(tasksDoc)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)

	authService := service.NewAuthService(userRepo, jwtService, cacheClient, cfg.CacheTTL)
	taskService := service.NewTaskService(taskRepo, cacheClient, cfg.CacheTTL)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	router.Register(e, cfg, authHandler, taskHandler)

	log.Printf("stores: %s, %s (on corrupt: %s)", cfg.UsersFile(), cfg.TasksFile(), policy)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
