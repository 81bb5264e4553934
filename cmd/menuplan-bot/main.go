package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"menuplan-admin/internal/config"
	"menuplan-admin/internal/masterdata"
	"menuplan-admin/internal/plan"
	"menuplan-admin/internal/storage"
	"menuplan-admin/internal/telegram"
)

func main() {
	godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Telegram configuration incomplete: %v", err)
	}

	plans, err := storage.NewPlanStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open plan storage: %v", err)
	}

	state := masterdata.NewState(plan.DefaultCategorySet())
	watcher, err := masterdata.NewWatcher(state, cfg.FacilitiesPath, cfg.CategoriesPath)
	if err != nil {
		log.Fatalf("Failed to start master data watcher: %v", err)
	}
	defer watcher.Close()
	go watcher.Watch()

	bot, err := telegram.NewBot(cfg, plans, state)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
