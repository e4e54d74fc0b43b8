package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dboiago/Memoix-sub000/config"
	"github.com/dboiago/Memoix-sub000/internal/api"
	"github.com/dboiago/Memoix-sub000/internal/database"
	"github.com/dboiago/Memoix-sub000/internal/router"
	"github.com/dboiago/Memoix-sub000/internal/server"
	"github.com/dboiago/Memoix-sub000/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional: without it the cook log and share links are off.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, cook log and share links disabled: %v", err)
		redisClient = nil
	}

	recipeService := service.NewRecipeService(db, redisClient)
	authService := service.NewAuthService(db, cfg.JWTSecret)

	var imageService *service.ImageService
	if s3Cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket); err != nil {
		log.Printf("S3 unavailable, image uploads disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Cfg)
	}

	var shareService service.IShareService
	if redisClient != nil {
		shareService = service.NewShareService(redisClient)
	}

	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, imageService, authService)
	shareHandler := api.NewShareHandler(recipeService, shareService, authService)

	engine := router.SetupRouter(authHandler, recipeHandler, shareHandler)
	srv := server.NewServer(engine)

	errChan := make(chan error, 1)
	go func() {
		addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
		log.Printf("Starting server on %s", addr)
		errChan <- srv.Start(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
