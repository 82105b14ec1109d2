package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"indicab/internal/api"
	"indicab/internal/auth"
	"indicab/internal/config"
	"indicab/internal/repository"
	"indicab/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	stripeSvc := service.NewStripeService(cfg)
	senderSvc := service.NewSenderService(cfg)
	bookingSvc := service.NewBookingService(bookingRepo, vehicleRepo, stripeSvc, senderSvc)
	adminSvc := service.NewAdminService(adminRepo, bookingRepo, vehicleRepo, driverRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, cfg.JWTSecret)
	jobSvc := service.NewJobService(jobRepo)

	bookingHandler := api.NewBookingHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)
	webhookHandler := api.NewStripeWebhookHandler(cfg.StripeWebhookSecret, bookingSvc, stripeSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/availability", bookingHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/vehicles", bookingHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.CancelBooking).Methods("DELETE")
	r.HandleFunc("/api/stripe/webhook", webhookHandler.HandleWebhook).Methods("POST")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}/status", adminHandler.UpdateBookingStatus).Methods("PUT")
	admin.HandleFunc("/vehicles", adminHandler.ListVehicles).Methods("GET")
	admin.HandleFunc("/vehicles/{id}/availability", adminHandler.UpdateVehicleAvailability).Methods("PUT")
	admin.HandleFunc("/drivers", adminHandler.ListDrivers).Methods("GET")
	admin.HandleFunc("/drivers", adminHandler.CreateDriver).Methods("POST")
	admin.HandleFunc("/drivers/{id}", adminHandler.UpdateDriver).Methods("PUT")
	admin.HandleFunc("/reports", adminHandler.GetReport).Methods("GET")
	admin.HandleFunc("/register", adminAuthHandler.CreateAdmin).Methods("POST")

	scheduler := cron.New()
	scheduler.AddFunc("*/15 * * * *", func() {
		if err := jobSvc.CompleteFinishedBookings(context.Background()); err != nil {
			log.Printf("Sweep error: %v", err)
		}
	})
	scheduler.AddFunc("@hourly", func() {
		if err := jobSvc.CancelStalePendingBookings(context.Background()); err != nil {
			log.Printf("Sweep error: %v", err)
		}
	})
	scheduler.Start()
	defer scheduler.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(r)))
}
