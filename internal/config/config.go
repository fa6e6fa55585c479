package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	QRGuard  QRGuardConfig
	POS      POSConfig
	Printer  PrinterConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// QRGuardConfig tunes the defenses on the public QR ordering endpoint.
type QRGuardConfig struct {
	WindowSeconds     int           // rolling rate-limit window per (IP, table)
	MaxPerWindow      int           // accepted submissions per window
	MinGap            time.Duration // minimum gap between submissions from the same key
	IdempotencyTTL    time.Duration // how long a clientRequestId blocks replays
	IPRequestsPerSec  float64       // in-process per-IP limiter rate
	IPBurst           int           // in-process per-IP limiter burst
}

// POSConfig holds venue-level point-of-sale tunables.
type POSConfig struct {
	TaxRatePercent         float64 // dine-in tax rate, percent
	CashierDiscountCeiling float64 // max discount percentage a cashier may apply
	OwnerDiscountCeiling   float64 // max discount percentage an owner may apply
	DefaultOpeningCash     int64   // cents, prefill for opening a business day
	VenueName              string
	VenueAddress           string
	VenuePhone             string
}

type PrinterConfig struct {
	Type    string // usb, network, none
	USBPath string
	Address string
	Width   int // characters per line: 32 for 58mm, 48 for 80mm
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "dinetrack-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "dinetrack")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Cairo")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("QR_WINDOW_SECONDS", 60)
	viper.SetDefault("QR_MAX_PER_WINDOW", 3)
	viper.SetDefault("QR_MIN_GAP_SECONDS", 2)
	viper.SetDefault("QR_IDEMPOTENCY_TTL_MINUTES", 5)
	viper.SetDefault("QR_IP_REQUESTS_PER_SEC", 5)
	viper.SetDefault("QR_IP_BURST", 10)
	viper.SetDefault("POS_TAX_RATE_PERCENT", 14)
	viper.SetDefault("POS_CASHIER_DISCOUNT_CEILING", 15)
	viper.SetDefault("POS_OWNER_DISCOUNT_CEILING", 30)
	viper.SetDefault("POS_DEFAULT_OPENING_CASH", 50000)
	viper.SetDefault("POS_VENUE_NAME", "DineTrack Restaurant")
	viper.SetDefault("POS_VENUE_ADDRESS", "")
	viper.SetDefault("POS_VENUE_PHONE", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		QRGuard: QRGuardConfig{
			WindowSeconds:    viper.GetInt("QR_WINDOW_SECONDS"),
			MaxPerWindow:     viper.GetInt("QR_MAX_PER_WINDOW"),
			MinGap:           time.Duration(viper.GetInt("QR_MIN_GAP_SECONDS")) * time.Second,
			IdempotencyTTL:   time.Duration(viper.GetInt("QR_IDEMPOTENCY_TTL_MINUTES")) * time.Minute,
			IPRequestsPerSec: viper.GetFloat64("QR_IP_REQUESTS_PER_SEC"),
			IPBurst:          viper.GetInt("QR_IP_BURST"),
		},
		POS: POSConfig{
			TaxRatePercent:         viper.GetFloat64("POS_TAX_RATE_PERCENT"),
			CashierDiscountCeiling: viper.GetFloat64("POS_CASHIER_DISCOUNT_CEILING"),
			OwnerDiscountCeiling:   viper.GetFloat64("POS_OWNER_DISCOUNT_CEILING"),
			DefaultOpeningCash:     viper.GetInt64("POS_DEFAULT_OPENING_CASH"),
			VenueName:              viper.GetString("POS_VENUE_NAME"),
			VenueAddress:           viper.GetString("POS_VENUE_ADDRESS"),
			VenuePhone:             viper.GetString("POS_VENUE_PHONE"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
