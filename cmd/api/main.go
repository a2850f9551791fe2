package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v76"

	"github.com/kvitka/hotel-bookings/internal/http/handlers"
	"github.com/kvitka/hotel-bookings/internal/mailer"
	"github.com/kvitka/hotel-bookings/internal/repo/postgres"
	redisrepo "github.com/kvitka/hotel-bookings/internal/repo/redis"
	"github.com/kvitka/hotel-bookings/internal/service"
	"github.com/kvitka/hotel-bookings/internal/token"
	"github.com/kvitka/hotel-bookings/pkg/config"
	"github.com/kvitka/hotel-bookings/pkg/database"
	"github.com/kvitka/hotel-bookings/pkg/events"
	"github.com/kvitka/hotel-bookings/pkg/logger"
	mw "github.com/kvitka/hotel-bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := goredis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := goredis.NewClient(redisOpts)
	defer redisClient.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	stripe.Key = cfg.Stripe.SecretKey

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	limiter := redisrepo.NewRateLimiter(redisClient)

	tokens := token.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.ConfirmTokenTTL)
	mail := selectMailer(cfg)

	// Services
	accountService := service.NewAccountService(userRepo, tokens, mail, eventBus, cfg)
	bookingService := service.NewBookingService(bookingRepo, roomRepo, userRepo, mail, eventBus, cfg)
	roomService := service.NewRoomService(roomRepo)
	paymentService := service.NewPaymentService(bookingRepo, eventBus, cfg)

	h := handlers.New(accountService, bookingService, roomService, paymentService, limiter, cfg)

	// Router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Get("/confirm-email", h.ConfirmEmail)
		r.Post("/resend-confirmation", h.ResendConfirmation)
		r.With(h.LoginRateLimit()).Post("/login", h.Login)
	})

	r.Get("/rooms/types", h.ListRoomTypes)

	r.Route("/account", func(r chi.Router) {
		r.Use(h.RequireJWT(""))
		r.Get("/", h.Account)
		r.Put("/profile", h.UpdateProfile)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(h.RequireJWT(""))
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListMyBookings)
		r.Get("/{token}", h.GetBooking)
		r.Post("/{token}/payment-intent", h.CreatePaymentIntent)
		r.Post("/{token}/payment-confirm", h.ConfirmPayment)
	})

	r.Route("/staff", func(r chi.Router) {
		r.Use(h.RequireJWT("staff"))
		r.Get("/bookings", h.ListAllBookings)
		r.Post("/bookings/{token}/rooms", h.AssignRooms)
		r.Get("/rooms", h.ListRooms)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireJWT("admin"))
		r.Get("/users", h.ListUsers)
		r.Post("/rooms/types", h.CreateRoomType)
		r.Patch("/rooms/types/{id}", h.UpdateRoomType)
		r.Delete("/rooms/types/{id}", h.DeleteRoomType)
		r.Post("/rooms", h.CreateRoom)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting hotel bookings API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func selectMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode:
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Site.Name)
	default:
		return mailer.NewSMTPMailer(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
			cfg.Site.Name,
		)
	}
}
