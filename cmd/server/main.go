package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/config"
	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/handler"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := container.SupabaseClient.Initialize(); err != nil {
		container.Logger.Error("Failed to initialize Supabase client", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(
		container.SessionService,
		container.UserRepository,
		container.Logger,
	)

	generationHandler := handler.NewGenerationHandler(
		container.GenerationService,
		container.UserRepository,
		container.QuotaService,
		container.Logger,
	)

	sessionMiddleware := handler.NewSessionMiddleware(
		container.SessionService,
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		authHandler,
		generationHandler,
		sessionMiddleware.Middleware,
	)

	// start server
	server := &http.Server{
		Addr:    ":" + container.Config.GetServerPort(),
		Handler: router,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	_ = server.Close()

	container.Logger.Info("Server exited")
}
