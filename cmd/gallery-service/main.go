package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"gallery-shop/internal/audit"
	"gallery-shop/internal/cache"
	"gallery-shop/internal/checkout"
	checkoutapi "gallery-shop/internal/checkout/api"
	"gallery-shop/internal/config"
	"gallery-shop/internal/contact"
	contactapi "gallery-shop/internal/contact/api"
	"gallery-shop/internal/content"
	contentapi "gallery-shop/internal/content/api"
	"gallery-shop/internal/events"
	"gallery-shop/internal/fulfillment"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/mailer"
	"gallery-shop/internal/payment"
	paymenthandler "gallery-shop/internal/payment/handler"
	"gallery-shop/internal/revalidate"
	revalidateapi "gallery-shop/internal/revalidate/api"
	"gallery-shop/internal/sanity"
)

func main() {
	log := logger.New("gallery-service")
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("MAIN", "No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("MAIN", fmt.Sprintf("Failed to load configuration: %v", err))
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("MAIN", fmt.Sprintf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err))
	}
	log.Info("MAIN", fmt.Sprintf("Connected to Redis at %s", cfg.Redis.Addr))

	sqldb, err := sql.Open("sqlite", cfg.Audit.DBPath)
	if err != nil {
		log.Fatal("MAIN", fmt.Sprintf("Failed to open audit database: %v", err))
	}
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	auditStore, err := audit.NewStore(context.Background(), bunDB, log)
	if err != nil {
		log.Fatal("MAIN", fmt.Sprintf("Failed to initialize audit store: %v", err))
	}

	var producer *events.Producer
	if cfg.Kafka.Enabled() {
		producer = events.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		log.Info("MAIN", fmt.Sprintf("Kafka producer enabled, brokers %v", cfg.Kafka.Brokers))
	} else {
		log.Warn("MAIN", "Kafka brokers not configured, sale events disabled")
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	cms := sanity.NewClient(cfg.Sanity, httpClient, log)
	pageCache := cache.New(redisClient, cfg.Redis.CacheTTL, log)
	mail := mailer.New(cfg.SMTP, cfg.Site, log)
	stripeClient := client.New(cfg.Stripe.SecretKey, nil)

	checkoutService := checkout.NewService(cms, &checkout.StripeSessions{Client: stripeClient}, checkout.Options{
		BaseURL:           cfg.Site.BaseURL,
		ArtistName:        cfg.Site.ArtistName,
		ShippingCountries: cfg.Site.ShippingCountries,
	}, log)

	// EventPublisher is an interface; a typed nil pointer would not compare
	// equal to nil inside the service.
	var publisher fulfillment.EventPublisher
	if producer != nil {
		publisher = producer
	}
	fulfillService := fulfillment.NewService(cms, mail, publisher, cfg.SMTP.ArtistEmail, cfg.Kafka.SoldTopic, log)

	webhookService := payment.NewWebhookService(cfg.Stripe.WebhookSecret, fulfillService, auditStore, log)
	revalidateService := revalidate.NewService(cfg.Sanity.WebhookSecret, pageCache, log)
	contactService := contact.NewService(mail, cfg.SMTP.ArtistEmail, log)
	contentService := content.NewService(cms, pageCache, log)

	checkoutHandler := checkoutapi.NewHandler(checkoutService, log)
	webhookHandler := paymenthandler.NewWebhookHandler(webhookService, log)
	revalidateHandler := revalidateapi.NewHandler(revalidateService, log)
	contactHandler := contactapi.NewHandler(contactService, log)
	contentHandler := contentapi.NewHandler(contentService, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkout", checkoutHandler.CreateSession)
		r.Post("/webhook/stripe", webhookHandler.HandleStripeWebhook)
		r.Post("/revalidate", revalidateHandler.Revalidate)
		r.Post("/contact", contactHandler.Submit)

		r.Get("/home", contentHandler.Home)
		r.Get("/artworks", contentHandler.Gallery)
		r.Get("/artworks/{slug}", contentHandler.Artwork)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("MAIN", fmt.Sprintf("Gallery service listening on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("MAIN", fmt.Sprintf("Server failed: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("MAIN", "Shutting down gallery service")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("MAIN", fmt.Sprintf("Forced shutdown: %v", err))
	}

	redisClient.Close()
	bunDB.Close()
	log.Info("MAIN", "Gallery service stopped")
}
