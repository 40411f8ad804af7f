package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campuspolls/election-backend/api"
	"github.com/campuspolls/election-backend/internal/platform/config"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/platform/shutdown"
	"github.com/campuspolls/election-backend/internal/platform/startup"
	"github.com/campuspolls/election-backend/pkg/token"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	token.SetSecretKey(cfg.Auth.JWTSecret)

	if err := database.InitDB(cfg.Database); err != nil {
		panic(fmt.Sprintf("Failed to initialize database: %v", err))
	}
	if err := database.InitRedis(cfg.Database.Redis); err != nil {
		panic(fmt.Sprintf("Failed to initialize Redis: %v", err))
	}

	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("Application initialization failed: %v", err))
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Candidate portraits uploaded by admins are served statically.
	r.Static("/images/candidates", "./assets/candidate_images")

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("Server listening on %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	shutdown.ListenForSignalsAndShutdown(server)
}
