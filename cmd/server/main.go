// @title           Invitación API
// @version         1.0
// @description     Birthday invitation page with attendance confirmation.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	"invitacion/internal/api"
	"invitacion/internal/attendance"
	"invitacion/internal/config"
	"invitacion/internal/database"
	"invitacion/internal/identity"
	"invitacion/internal/invitation"
	"invitacion/internal/storage"
	"invitacion/internal/websocket"
	"invitacion/web"

	_ "invitacion/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	localStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}
	log.Printf("Local fallback data is stored in: %s", cfg.Storage.Path)

	templates, err := web.Templates()
	if err != nil {
		log.Fatalf("Failed to parse page templates: %v", err)
	}

	wsHub := websocket.NewHub(attendance.CountLabel)
	go wsHub.Run()

	var (
		controller *attendance.Controller
		attendees  api.AttendeeLister
	)

	store, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		log.Printf("WARN: %v. Falling back to local only.", err)
		controller = attendance.NewOffline(localStorage)
	} else {
		defer store.Close()
		log.Println("Connected to the database")

		controller = attendance.NewOnline(store, localStorage, wsHub)
		attendees = store

		go func() {
			if err := store.ListenAttendeeCount(ctx, controller.OnCount); err != nil {
				log.Printf("ERROR: attendee count subscription stopped: %v", err)
			}
		}()
	}
	log.Printf("Attendance mode: %s", controller.Mode())

	provider := identity.NewProvider(
		cfg.Identity.CookieName,
		cfg.Identity.Secret,
		cfg.Identity.MaxAge,
		cfg.Identity.Secure,
	)

	server := api.NewServer(cfg, controller, invitation.New(cfg.Invitation), provider, wsHub, attendees, templates)

	httpServer := &http.Server{
		Addr:              cfg.AppHost,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.AppHost)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: graceful shutdown failed: %v", err)
	}
}
