package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapi/internal/config"
	"todoapi/internal/mail"
	"todoapi/internal/repository"
	"todoapi/internal/server"
	"todoapi/internal/service"
	"todoapi/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	listRepo := repository.NewListRepository(db)
	itemRepo := repository.NewItemRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	store := storage.NewDiskStore(cfg.StorageDir, cfg.SiteURL)

	authSvc := service.NewAuthService(
		userRepo, tokenRepo, mail.LogMailer{},
		cfg.SessionSecret, cfg.SessionTTL, cfg.ResetTokenTTL, cfg.SiteURL,
	)
	todoSvc := service.NewTodoService(listRepo, itemRepo)
	profileSvc := service.NewProfileService(profileRepo, store)

	cleanup := service.NewCleanupService(tokenRepo)
	if err := cleanup.Start(cfg.TokenCleanupInterval); err != nil {
		log.Fatalf("token cleanup: %v", err)
	}
	defer cleanup.Stop()

	srv := server.New(authSvc, todoSvc, profileSvc, cfg.SiteURL, cfg.StorageDir)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Todo service listening on %s", cfg.ListenAddr)
	if err := srv.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
