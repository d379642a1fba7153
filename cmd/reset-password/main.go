package main

import (
	"context"
	"flag"
	"strings"

	"styllobarber-pdv/internal/config"
	"styllobarber-pdv/internal/logging"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Resets a staff password from the command line and ends its current session.
// Defaults to the seeded admin profile.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
	}
	log := logging.SetupLogging(cfg.LogLevel)

	email := flag.String("email", cfg.AdminEmail, "profile email")
	password := flag.String("password", cfg.AdminPassword, "new password")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("password must have at least 6 characters")
	}

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database.ConnectDB")
	}

	ctx := context.Background()
	profiles := repository.NewProfileRepo(db)

	profile, err := profiles.FindByEmail(ctx, strings.ToLower(*email))
	if err != nil {
		log.WithError(err).WithField("email", *email).Fatal("profile not found")
	}

	if err := profile.SetPassword(*password); err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	profile.TokenVersion = uuid.New().String()
	profile.UpdatedBy = "reset-password"

	if err := profiles.Update(ctx, profile); err != nil {
		log.WithError(err).Fatal("failed to update profile")
	}

	log.WithField("email", *email).Info("Password reset, active sessions ended")
}
