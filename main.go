package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"parfum/internal/config"
	"parfum/internal/database"
	"parfum/internal/handlers"
	"parfum/internal/middleware"
	"parfum/internal/repositories"
	"parfum/internal/services"
	"parfum/pkg/rabbitmq"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Fiber    *fiber.App
	Products *services.ProductService
	Auth     *services.AuthService

	db       *gorm.DB
	mqClient *rabbitmq.Client
	storage  string
}

// NewApp wires storage, services and routes from cfg.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{storage: cfg.Storage.Driver}

	// --- Initialize Storage ---
	// The none driver drops catalog writes but keeps the session in memory.
	var kv, sessionKV repositories.KeyValueRepository
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		kv = repositories.NewMemoryKeyValueRepository()
	case config.DriverNone:
		kv = repositories.NopKeyValueRepository{}
		sessionKV = repositories.NewMemoryKeyValueRepository()
	default:
		db, err := database.Open(cfg.Storage)
		if err != nil {
			return nil, err
		}
		a.db = db
		kv = repositories.NewGORMKeyValueRepository(db)
	}
	if sessionKV == nil {
		sessionKV = kv
	}
	snapshots := repositories.NewKVSnapshotRepository(kv, cfg.Storage.SnapshotKey)

	// --- Initialize RabbitMQ Client ---
	opts := []services.ProductServiceOption{}
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			a.closeStorage()
			return nil, err
		}
		a.mqClient = mqClient
		opts = append(opts, services.WithEventPublisher(mqClient))
	}

	// --- Initialize Services ---
	a.Products = services.NewProductService(snapshots, opts...)
	a.Products.Init()
	a.Auth = services.NewAuthService(sessionKV, cfg.Auth.JWTSecret, cfg.Auth.AdminPasswordHash,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(a.Products, cfg.ItemsPerPage)
	authHandler := handlers.NewAuthHandler(a.Auth)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", a.handleHealth)

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(a.Auth))
	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterRoutes(protected)

	a.Fiber = app
	return a, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	rabbit := "disabled"
	if a.mqClient != nil {
		rabbit = "connected"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"storage":  a.storage,
		"rabbitMQ": rabbit,
		"products": len(a.Products.GetAllProducts()),
	})
}

// StartEventConsumer logs catalog events read back from the queue. It is a
// no-op when publishing is disabled.
func (a *App) StartEventConsumer() error {
	if a.mqClient == nil {
		return nil
	}
	logrus.Info("Starting RabbitMQ consumer for catalog events...")
	return a.mqClient.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
		logrus.WithFields(logrus.Fields{
			"event":        msg.Type,
			"delivery_tag": msg.DeliveryTag,
		}).Info(string(msg.Body))
		return nil
	})
}

// Close flushes the catalog and releases the broker and database.
func (a *App) Close() {
	if err := a.Products.Close(); err != nil {
		logrus.WithError(err).Error("Error flushing catalog")
	}
	if a.mqClient != nil {
		if err := a.mqClient.Close(); err != nil {
			logrus.WithError(err).Error("Error closing RabbitMQ client")
		}
	}
	a.closeStorage()
}

func (a *App) closeStorage() {
	if a.db != nil {
		database.Close(a.db)
		a.db = nil
	}
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app, err := NewApp(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	if err := app.StartEventConsumer(); err != nil {
		logrus.WithError(err).Error("Failed to start RabbitMQ consumer")
	}

	// --- Start HTTP Server ---
	logrus.Infof("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logrus.Info("Shutting down server...")

	if err := app.Fiber.Shutdown(); err != nil {
		logrus.WithError(err).Error("Error during Fiber shutdown")
	}
	logrus.Info("Server gracefully stopped")
}
