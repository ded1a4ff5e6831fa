package main

import (
	"flag"

	"it-inventory/internal/config"
	"it-inventory/internal/logger"
	"it-inventory/internal/repository"
	"it-inventory/internal/seed"
	"it-inventory/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "admin@example.com", "account to reset")
	password := flag.String("password", seed.DefaultPassword, "new password")
	flag.Parse()

	// 1. Load Env
	envErr := godotenv.Load()

	cfg := config.Load()
	l := logger.CreateLogger("it-inventory-reset-password", cfg.LogLevel)
	if envErr != nil {
		l.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg, l)
	if err != nil {
		l.WithError(err).Fatal("failed to connect database")
	}

	// 3. Find user
	userRepo := repository.NewUserRepo(db)
	user, err := userRepo.FindByEmail(*email)
	if err != nil {
		l.WithError(err).Fatalf("user %s not found", *email)
	}

	// 4. Hash and store; rotating the token version ends open sessions
	if err := user.SetPassword(*password); err != nil {
		l.WithError(err).Fatal("failed to hash password")
	}
	if err := userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		l.WithError(err).Fatal("failed to update password")
	}
	if err := userRepo.UpdateTokenVersion(user.ID, uuid.New().String()); err != nil {
		l.WithError(err).Fatal("failed to revoke sessions")
	}

	l.WithField("email", *email).Info("password reset")
}
