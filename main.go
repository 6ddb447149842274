package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentalprima/internal/auth"
	"rentalprima/internal/config"
	api "rentalprima/internal/http"
	"rentalprima/internal/http/handlers"
	"rentalprima/internal/repositories"
	"rentalprima/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := config.OpenDB(env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	listings := repositories.ListingRepository{DB: db, CountFiltered: env.ListingCountFiltered}
	users := repositories.UserRepository{DB: db}
	categories := repositories.CategoryRepository{DB: db}
	notifications := repositories.NotificationRepository{DB: db}

	provider := auth.NewProviderClient(env.ProviderURL, env.ProviderAnonKey, env.ProviderTimeout)
	tokens := auth.NewTokenManager(env.JWTSecret, env.JWTIssuer, env.SessionTTL)
	resolver := auth.Resolver{
		Provider:  provider,
		Tokens:    tokens,
		Users:     users,
		DemoLogin: env.DemoLoginEnabled,
	}

	hs := api.Handlers{
		System:        handlers.SystemHandler{DB: db},
		Auth:          handlers.AuthHandler{Resolver: resolver, Provider: provider, Users: users},
		Listings:      handlers.ListingHandler{Listings: listings, Users: users, Categories: categories, Notifications: notifications},
		Users:         handlers.UserHandler{Users: users},
		Admins:        handlers.AdminHandler{Users: users},
		Categories:    handlers.CategoryHandler{Categories: categories},
		Settings:      handlers.SettingHandler{},
		Notifications: handlers.NotificationHandler{Notifications: notifications},
		Reports:       handlers.ReportHandler{Reports: services.ListingReportService{Listings: listings}},
		Resolver:      resolver,
	}

	r := api.NewRouter(env, hs)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Rental Prima API listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
