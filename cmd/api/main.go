package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yakov100/recipe-book-sub000/config"
	"github.com/yakov100/recipe-book-sub000/internal/api"
	"github.com/yakov100/recipe-book-sub000/internal/collection"
	"github.com/yakov100/recipe-book-sub000/internal/database"
	"github.com/yakov100/recipe-book-sub000/internal/router"
	"github.com/yakov100/recipe-book-sub000/internal/server"
	"github.com/yakov100/recipe-book-sub000/internal/service"
	"github.com/yakov100/recipe-book-sub000/internal/snapshot"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	snapshots := snapshot.NewStore(redisClient)
	if cfg.SnapshotFreshness > 0 {
		snapshots = snapshot.NewStoreWithFreshness(redisClient, cfg.SnapshotFreshness)
	}

	recipes := service.NewRecipeService(db)
	library := service.NewLibraryService(recipes, snapshots, collection.NewStore())

	// First load of the session collection. A failed fetch is survivable:
	// the snapshot may already have painted, and /recipes/reload retries on
	// user demand.
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := library.Load(loadCtx); err != nil {
		log.Printf("Initial load failed: %v", err)
	}
	cancel()

	var s3cfg *config.S3Config
	if os.Getenv("S3_DISABLED") != "true" {
		s3cfg, err = config.NewS3Config(context.Background())
		if err != nil {
			log.Printf("Image storage unavailable: %v", err)
		}
	}
	images := service.NewImageService(s3cfg)

	var chat *service.ChatService
	if cfg.AIAPIKey != "" {
		chat, err = service.NewChatService(cfg, redisClient)
		if err != nil {
			log.Printf("Assistant unavailable: %v", err)
		}
	}

	engine := router.SetupRouter(
		api.NewRecipeHandler(library, images),
		api.NewChatHandler(chat),
		api.NewSettingsHandler(recipes),
		api.NewSessionHandler(),
	)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
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
