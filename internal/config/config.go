package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Leave      LeaveConfig
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
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// Timezone resolves "today" for attendance and payroll periods.
	Timezone *time.Location
}

// AttendanceConfig holds attendance policy
type AttendanceConfig struct {
	// StandardShiftHours is the daily shift length; hours beyond it
	// count as overtime.
	StandardShiftHours int
	// LateAfter marks a check-in late when it comes after this
	// wall-clock time ("HH:MM").
	LateAfter string
}

// LeaveConfig holds leave policy
type LeaveConfig struct {
	AnnualQuotaDays int
}

func Load() (*Config, error) {
	// Missing .env is fine, env vars may come from the environment.
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
		Name:     getEnv("DB_NAME", "staffsync"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	timezone, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: timezone,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy
	shiftHours, err := strconv.Atoi(getEnv("STANDARD_SHIFT_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_SHIFT_HOURS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		StandardShiftHours: shiftHours,
		LateAfter:          getEnv("LATE_AFTER", "09:15"),
	}

	// Leave policy
	annualQuota, err := strconv.Atoi(getEnv("ANNUAL_LEAVE_QUOTA_DAYS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANNUAL_LEAVE_QUOTA_DAYS: %w", err)
	}

	config.Leave = LeaveConfig{
		AnnualQuotaDays: annualQuota,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.StandardShiftHours <= 0 || c.Attendance.StandardShiftHours > 24 {
		return fmt.Errorf("STANDARD_SHIFT_HOURS must be between 1 and 24")
	}
	if c.Leave.AnnualQuotaDays < 0 {
		return fmt.Errorf("ANNUAL_LEAVE_QUOTA_DAYS must be non-negative")
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
