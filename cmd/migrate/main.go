package main

import (
	"database/sql"
	"errors"
	"flag"
	"strconv"

	"styllobarber-pdv/internal/config"
	"styllobarber-pdv/internal/logging"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Usage: migrate [up | down [n] | version]
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
	}
	log := logging.SetupLogging(cfg.LogLevel)

	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	db, err := sql.Open("postgres", cfg.MigrateURL())
	if err != nil {
		log.WithError(err).Fatal("sql.Open")
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.WithError(err).Fatal("postgres.WithInstance")
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		log.WithError(err).Fatal("migrate.NewWithDatabaseInstance")
	}

	preMigrationVersion := currentVersion(m, log)

	switch command {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if raw := flag.Arg(1); raw != "" {
			steps, err = strconv.Atoi(raw)
			if err != nil || steps <= 0 {
				log.WithField("steps", raw).Fatal("down expects a positive step count")
			}
		}
		err = m.Steps(-steps)
	case "version":
		log.WithField("version", preMigrationVersion).Info("Migration status")
		return
	default:
		log.WithField("command", command).Fatal("unknown command, use up, down [n] or version")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).Fatal("migrate." + command)
	}

	log.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": currentVersion(m, log),
	}).Info("Migration status")
}

func currentVersion(m *migrate.Migrate, log *logrus.Logger) uint {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0
	}
	if err != nil {
		log.WithError(err).Fatal("m.Version")
	}
	if dirty {
		log.WithField("version", version).Warn("database is in a dirty migration state")
	}
	return version
}
