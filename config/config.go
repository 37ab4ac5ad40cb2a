package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"restaurant-till/restaurant"
)

type Config struct {
	DB          DBConfig
	Telegram    TelegramConfig
	Restaurant  RestaurantConfig
	LogLevel    string
	AutoMigrate bool
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token   string
	AdminID int64 // only this user may edit the menu
}

type RestaurantConfig struct {
	Name        string
	Location    string
	OpeningTime restaurant.TimeOfDay
	ClosingTime restaurant.TimeOfDay
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT: %w", err)
	}

	var adminID int64
	if v := getEnv("ADMIN_ID", ""); v != "" {
		adminID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_ID: %w", err)
		}
	}

	opening, err := restaurant.ParseTimeOfDay(getEnv("OPENING_TIME", "10:30:00"))
	if err != nil {
		return nil, fmt.Errorf("OPENING_TIME: %w", err)
	}
	closing, err := restaurant.ParseTimeOfDay(getEnv("CLOSING_TIME", "22:00:00"))
	if err != nil {
		return nil, fmt.Errorf("CLOSING_TIME: %w", err)
	}
	if opening >= closing {
		return nil, fmt.Errorf("%w: %s-%s", restaurant.ErrInvalidHours, opening, closing)
	}

	autoMigrate := strings.TrimSpace(os.Getenv("AUTO_MIGRATE"))

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "restaurant"),
		},
		Telegram: TelegramConfig{
			Token:   getEnv("TOKEN", ""),
			AdminID: adminID,
		},
		Restaurant: RestaurantConfig{
			Name:        getEnv("RESTAURANT_NAME", "Amelie's cafe"),
			Location:    getEnv("RESTAURANT_LOCATION", "Chennai"),
			OpeningTime: opening,
			ClosingTime: closing,
		},
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		AutoMigrate: autoMigrate == "1" || strings.EqualFold(autoMigrate, "true"),
	}, nil
}

// ConnString returns the postgres URL for pgx.
func (c DBConfig) ConnString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
