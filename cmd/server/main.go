package main

import (
	"context"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/config"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/events"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/repository"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/service"
	httpTransport "github.com/kahvecikaan/buildingMicroservices/menu-api/internal/transport/http"
	websocketTransport "github.com/kahvecikaan/buildingMicroservices/menu-api/internal/transport/websocket"
	"github.com/nicholasjackson/env"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		"0.0.0.0:5001", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [trace, debug, info, warn, error]")
	debug = env.Bool("DEBUG", false,
		true, "Print stack traces of recovered panics")
	filterByRestaurant = env.Bool("FILTER_BY_RESTAURANT", false,
		false, "Only list the products of the requested restaurant")
	amqpURL = env.String("AMQP_URL", false,
		"", "RabbitMQ URL to publish product events to, disabled when empty")
	amqpQueue = env.String("AMQP_QUEUE", false,
		"product-events", "RabbitMQ queue for product events")
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		hclog.Default().Error("Unable to load .env file", "error", err)
		os.Exit(1)
	}
	if err := env.Parse(); err != nil {
		hclog.Default().Error("Unable to parse environment", "error", err)
		os.Exit(1)
	}

	cfg := config.Config{
		BindAddress:        *bindAddress,
		LogLevel:           *logLevel,
		Debug:              *debug,
		FilterByRestaurant: *filterByRestaurant,
		AMQPURL:            *amqpURL,
		AMQPQueue:          *amqpQueue,
	}
	if err := cfg.Validate(); err != nil {
		hclog.Default().Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "menu-api",
		Level: hclog.LevelFromString(cfg.LogLevel),
		Color: hclog.AutoColor,
	})

	// Create a standard logger for the HTTP server
	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	eventBus := events.NewEventBus[events.Event]()

	var forwarder *events.Forwarder
	if cfg.AMQPURL != "" {
		var err error
		forwarder, err = events.DialForwarder(logger.Named("amqp"), eventBus, cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Unable to connect to message broker", "error", err)
			os.Exit(1)
		}
		logger.Info("Publishing product events", "queue", cfg.AMQPQueue)
	}

	ps := service.NewProductService(
		repository.NewMemoryProductRepository(),
		eventBus,
		logger.Named("product-service"),
		service.Options{FilterByRestaurant: cfg.FilterByRestaurant},
	)

	ph := httpTransport.NewProductHandler(ps, logger.Named("http"))
	wh := websocketTransport.NewHandler(logger.Named("websocket"), eventBus)

	router := httpTransport.NewRouter(ph, logger.Named("http"), wh, httpTransport.RouterOptions{Debug: cfg.Debug})

	server := &http.Server{
		Addr:         cfg.BindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "bind_address", cfg.BindAddress, "debug", cfg.Debug)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down server", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Closing the service closes the event bus, which ends open websocket
	// streams; Shutdown does not track hijacked connections
	if err := ps.Close(); err != nil {
		logger.Error("Error closing product service", "error", err)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "error", err)
	}

	if forwarder != nil {
		if err := forwarder.Close(); err != nil {
			logger.Error("Error closing event forwarder", "error", err)
		}
	}
}
