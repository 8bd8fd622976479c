package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Grace    GraceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string

	// AtomicApproval selects the approval execution strategy:
	// "auto" probes the database at startup, "on"/"off" force
	// the transactional or sequential path.
	AtomicApproval string
}

// GraceConfig holds the thresholds applied by the request validators.
// Load fails on any unparsable value so a broken deployment can never
// run with a check silently disabled.
type GraceConfig struct {
	// MaxSession is the longest plausible span between a check-in and
	// its requested checkout.
	MaxSession time.Duration
	// MaxSubmissionDelay is how long after the check-in instant an
	// adjustment may still be submitted or approved.
	MaxSubmissionDelay time.Duration
	// MinOTDuration is the shortest overtime span worth requesting.
	MinOTDuration time.Duration
	// OTDayStartHour/OTDayStartMinute is the daily boundary ("HH:MM"
	// company time) before which overtime cannot end.
	OTDayStartHour   int
	OTDayStartMinute int
	// MaxPendingOTPerMonth caps open overtime requests per employee
	// per calendar month.
	MaxPendingOTPerMonth int
}

func Load() (*Config, error) {
	// Optional; real deployments pass environment variables directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AtomicApproval: getEnv("ATOMIC_APPROVAL", "auto"),
	}
	switch config.App.AtomicApproval {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid ATOMIC_APPROVAL %q: must be auto, on or off", config.App.AtomicApproval)
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	grace, err := loadGrace()
	if err != nil {
		return nil, err
	}
	config.Grace = *grace

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadGrace() (*GraceConfig, error) {
	maxSession, err := time.ParseDuration(getEnv("GRACE_MAX_SESSION", "16h"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRACE_MAX_SESSION: %w", err)
	}

	maxDelay, err := time.ParseDuration(getEnv("GRACE_MAX_SUBMISSION_DELAY", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRACE_MAX_SUBMISSION_DELAY: %w", err)
	}

	minOT, err := time.ParseDuration(getEnv("OT_MIN_DURATION", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OT_MIN_DURATION: %w", err)
	}

	dayStartHour, dayStartMinute, err := parseClock(getEnv("OT_DAY_START", "17:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid OT_DAY_START: %w", err)
	}

	maxPendingOT, err := strconv.Atoi(getEnv("OT_MAX_PENDING_PER_MONTH", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid OT_MAX_PENDING_PER_MONTH: %w", err)
	}

	grace := &GraceConfig{
		MaxSession:           maxSession,
		MaxSubmissionDelay:   maxDelay,
		MinOTDuration:        minOT,
		OTDayStartHour:       dayStartHour,
		OTDayStartMinute:     dayStartMinute,
		MaxPendingOTPerMonth: maxPendingOT,
	}
	if err := grace.Validate(); err != nil {
		return nil, err
	}
	return grace, nil
}

func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// Validate rejects thresholds that would turn a check into a no-op.
func (g *GraceConfig) Validate() error {
	if g.MaxSession <= 0 {
		return fmt.Errorf("GRACE_MAX_SESSION must be positive")
	}
	if g.MaxSubmissionDelay <= 0 {
		return fmt.Errorf("GRACE_MAX_SUBMISSION_DELAY must be positive")
	}
	if g.MinOTDuration <= 0 {
		return fmt.Errorf("OT_MIN_DURATION must be positive")
	}
	if g.MaxPendingOTPerMonth <= 0 {
		return fmt.Errorf("OT_MAX_PENDING_PER_MONTH must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
