package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: values that differ between environments (port, DB, secrets)
// - default: values common across all environments
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Otp     OtpConfig
	Sms     SmsConfig
	Payment PaymentConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Refresh-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type JWTConfig struct {
	Secret          string        `envconfig:"JWT_SECRET" required:"true"`
	AccessDuration  time.Duration `envconfig:"JWT_ACCESS_DURATION" default:"15m"`
	RefreshDuration time.Duration `envconfig:"JWT_REFRESH_DURATION" default:"336h"` // 14 days
}

type OtpConfig struct {
	TTL            time.Duration `envconfig:"OTP_TTL" default:"5m"`
	AttemptBudget  int           `envconfig:"OTP_ATTEMPT_BUDGET" default:"3"`
	ResendCooldown time.Duration `envconfig:"OTP_RESEND_COOLDOWN" default:"30s"`
	// DevMode echoes the plaintext code in the send-otp response instead of
	// dispatching an SMS. Read once at boot, never per request.
	DevMode bool `envconfig:"OTP_DEV_MODE" default:"false"`
}

type SmsConfig struct {
	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID" default:""`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN" default:""`
	TwilioFrom       string `envconfig:"TWILIO_FROM" default:""`
}

type PaymentConfig struct {
	RazorpayKeyID     string `envconfig:"RAZORPAY_KEY_ID" default:""`
	RazorpayKeySecret string `envconfig:"RAZORPAY_KEY_SECRET" default:""`
	// DevMode enables the no-payment test recharge endpoint.
	DevMode bool `envconfig:"PAYMENT_DEV_MODE" default:"false"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level: "error",
		},
		JWT: JWTConfig{
			Secret:          "test-secret",
			AccessDuration:  15 * time.Minute,
			RefreshDuration: 14 * 24 * time.Hour,
		},
		Otp: OtpConfig{
			TTL:            5 * time.Minute,
			AttemptBudget:  3,
			ResendCooldown: 30 * time.Second,
			DevMode:        true,
		},
		Payment: PaymentConfig{
			DevMode: true,
		},
	}
}
