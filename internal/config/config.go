package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds everything the API and the migration runner need at startup.
type Config struct {
	Port string

	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBAutoMigrate  bool
	MigrationsPath string

	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	Location             *time.Location
	DefaultCommissionPct decimal.Decimal
	StatsRefreshInterval time.Duration

	LogLevel string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "styllobarber")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "your-super-secret-key-change-in-production")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("ADMIN_EMAIL", "admin@styllobarber.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("DEFAULT_COMMISSION_PCT", "40")
	v.SetDefault("STATS_REFRESH_INTERVAL", "30s")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads configuration from the environment. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBAutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		LogLevel:       v.GetString("LOG_LEVEL"),
	}

	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL %q", v.GetString("JWT_TTL"))
	}

	cfg.StatsRefreshInterval = v.GetDuration("STATS_REFRESH_INTERVAL")
	if cfg.StatsRefreshInterval <= 0 {
		return nil, fmt.Errorf("invalid STATS_REFRESH_INTERVAL %q", v.GetString("STATS_REFRESH_INTERVAL"))
	}

	pct, err := decimal.NewFromString(v.GetString("DEFAULT_COMMISSION_PCT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_COMMISSION_PCT: %w", err)
	}
	if !pct.IsPositive() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("DEFAULT_COMMISSION_PCT must be above 0 and at most 100, got %s", pct)
	}
	cfg.DefaultCommissionPct = pct

	cfg.Location, err = time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		// Fallback to UTC-3 if timezone data not available
		cfg.Location = time.FixedZone("BRT", -3*60*60)
	}

	return cfg, nil
}

// DSN builds the postgres connection string. DATABASE_URL wins when set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.Location.String(),
	)
}

// MigrateURL is the URL form golang-migrate expects.
func (c *Config) MigrateURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
