package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"it-inventory/internal/config"
	"it-inventory/internal/event"
	"it-inventory/internal/logger"
	"it-inventory/internal/router"
	"it-inventory/internal/seed"
	"it-inventory/internal/ws"
	"it-inventory/pkg/database"
	"it-inventory/pkg/jwt"

	"github.com/joho/godotenv"
)

const tokenIssuer = "it-inventory"

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg := config.Load()
	l := logger.CreateLogger("it-inventory-api", cfg.LogLevel)
	if envErr != nil {
		l.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg, l)
	if err != nil {
		l.WithError(err).Fatal("failed to connect database")
	}
	if err := database.Migrate(db); err != nil {
		l.WithError(err).Fatal("failed to migrate database")
	}

	// 3. Seed privileges, roles, locations, categories and default users
	if cfg.SeedDefaults {
		if err := seed.Run(l, db); err != nil {
			l.WithError(err).Fatal("failed to seed defaults")
		}
	}

	// 4. Setup WebSocket Hub and event publishers
	wsHub := ws.NewHub(l)
	go wsHub.Run()

	publishers := []event.Publisher{event.NewHubPublisher(wsHub)}
	var kafkaPub *event.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub = event.NewKafkaPublisher(l, event.NewKafkaWriter(l, cfg.KafkaBrokers), map[event.Topic]string{
			event.TopicMovement: cfg.MovementTopic,
			event.TopicAsset:    cfg.AssetTopic,
		})
		publishers = append(publishers, kafkaPub)
		l.WithField("brokers", cfg.KafkaBrokers).Info("kafka publishing enabled")
	}

	loc, err := time.LoadLocation(cfg.DBTimeZone)
	if err != nil {
		l.WithError(err).Warnf("unknown time zone %q, using UTC", cfg.DBTimeZone)
		loc = time.UTC
	}

	// 5. Setup Fiber
	app := router.NewApp(router.Deps{
		Config:   cfg,
		Logger:   l,
		DB:       db,
		Tokens:   jwt.NewManager(cfg.JWTSecret, cfg.JWTExpiration, tokenIssuer),
		Events:   event.Multi(publishers...),
		Hub:      wsHub,
		Location: loc,
	})

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			l.WithError(err).Panic("server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		l.WithError(err).Fatal("server forced to shutdown")
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			l.WithError(err).Warn("failed to flush kafka writer")
		}
	}

	l.Info("Server exited")
}
