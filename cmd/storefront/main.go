package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sohub23/Smart-Home-sub003/internal/cart"
	"github.com/sohub23/Smart-Home-sub003/internal/checkout"
	"github.com/sohub23/Smart-Home-sub003/internal/config"
	"github.com/sohub23/Smart-Home-sub003/internal/customer"
	"github.com/sohub23/Smart-Home-sub003/internal/db"
	"github.com/sohub23/Smart-Home-sub003/internal/events"
	httpserver "github.com/sohub23/Smart-Home-sub003/internal/http"
	"github.com/sohub23/Smart-Home-sub003/internal/mailer"
	"github.com/sohub23/Smart-Home-sub003/internal/notify"
	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/payment"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	// DB
	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatalf("migrations: %v", err)
	}
	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	orderRepo := order.NewRepository(database)
	quoteRepo := quote.NewRepository(database)
	customerRepo := customer.NewRepository(database)
	mailRepo := mailer.NewRepository(database)

	// RabbitMQ
	rabbitConn := events.MustDialRabbit(cfg.RabbitURL)
	defer rabbitConn.Close()

	publisher, err := events.NewPublisher(rabbitConn, events.NewSequenceRepository(database))
	if err != nil {
		logger.Fatalf("events publisher: %v", err)
	}
	defer publisher.Close()

	hub := notify.NewHub()

	// Context for consumer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := events.StartNotificationsConsumer(ctx, rabbitConn, hub, logger); err != nil {
		logger.Fatalf("start consumer: %v", err)
	}

	gateway := payment.NewClient(cfg.StoreID, cfg.StorePassword, cfg.GatewayLive)

	assembler := checkout.NewAssembler(checkout.Settings{
		StoreID:       cfg.StoreID,
		StorePassword: cfg.StorePassword,
		Currency:      cfg.Currency,

		SuccessURL: cfg.CallbackBaseURL + "/api/payment/success",
		FailURL:    cfg.CallbackBaseURL + "/api/payment/fail",
		CancelURL:  cfg.CallbackBaseURL + "/api/payment/cancel",
		IPNURL:     cfg.CallbackBaseURL + "/api/payment/ipn",

		City:     cfg.City,
		State:    cfg.State,
		Postcode: cfg.Postcode,
		Country:  cfg.Country,

		ProductName:     "Smart Home Products",
		ProductCategory: "Electronics",
		ProductProfile:  "physical-goods",
		ShippingMethod:  "Courier",
	})

	// HTTP
	handler := httpserver.NewRouter(httpserver.Deps{
		Sessions:        cart.NewSessionStore(),
		Assembler:       assembler,
		Orders:          orderRepo,
		Quotes:          quoteRepo,
		Customers:       customerRepo,
		MailRepo:        mailRepo,
		Relay:           mailer.NewRelayClient(cfg.EmailRelayURL),
		Publisher:       publisher,
		Hub:             hub,
		Gateway:         gateway,
		Validator:       gateway,
		FrontendBaseURL: cfg.FrontendBaseURL,
		AllowOrigins:    cfg.CORSAllowOrigins,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 5*time.Second,
	}

	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	cancel()
}
