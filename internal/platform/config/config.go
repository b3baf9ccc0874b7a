package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting, ulule/limiter formatted rate (e.g. "120-M")
	RateLimit string

	// Scheduler settings
	DraftRetentionDays   int
	IgnoredRetentionDays int
	AuditRetentionDays   int
	SweepInterval        time.Duration
	RecurringInterval    time.Duration

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "finbooks")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("DRAFT_RETENTION_DAYS", 90)
	viper.SetDefault("IGNORED_RETENTION_DAYS", 180)
	viper.SetDefault("AUDIT_RETENTION_DAYS", 365)
	viper.SetDefault("SWEEP_INTERVAL", "1h")
	viper.SetDefault("RECURRING_INTERVAL", "15m")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.DraftRetentionDays = viper.GetInt("DRAFT_RETENTION_DAYS")
	if cfg.DraftRetentionDays <= 0 {
		cfg.DraftRetentionDays = 90
		log.Printf("Warning: DRAFT_RETENTION_DAYS must be positive. Defaulting to %d.\n", cfg.DraftRetentionDays)
	}
	cfg.IgnoredRetentionDays = viper.GetInt("IGNORED_RETENTION_DAYS")
	if cfg.IgnoredRetentionDays <= 0 {
		cfg.IgnoredRetentionDays = 180
		log.Printf("Warning: IGNORED_RETENTION_DAYS must be positive. Defaulting to %d.\n", cfg.IgnoredRetentionDays)
	}
	cfg.AuditRetentionDays = viper.GetInt("AUDIT_RETENTION_DAYS")
	if cfg.AuditRetentionDays <= 0 {
		cfg.AuditRetentionDays = 365
		log.Printf("Warning: AUDIT_RETENTION_DAYS must be positive. Defaulting to %d.\n", cfg.AuditRetentionDays)
	}

	sweepStr := viper.GetString("SWEEP_INTERVAL")
	cfg.SweepInterval, err = time.ParseDuration(sweepStr)
	if err != nil {
		cfg.SweepInterval = time.Hour
		log.Printf("Warning: Invalid value for SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepStr, cfg.SweepInterval)
	}
	recurringStr := viper.GetString("RECURRING_INTERVAL")
	cfg.RecurringInterval, err = time.ParseDuration(recurringStr)
	if err != nil {
		cfg.RecurringInterval = 15 * time.Minute
		log.Printf("Warning: Invalid value for RECURRING_INTERVAL ('%s'). Defaulting to %s.\n", recurringStr, cfg.RecurringInterval)
	}

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
