package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration

	GoogleClientID  string
	FrontendBaseURL string
	PosthogAPIKey   string
	PosthogEndpoint string

	// Login rate limiting, formatted as ulule/limiter rates ("5-M").
	LoginRateLimit string
	RedisURL       string

	// Live rate source
	RateSourceURL     string
	RateSourceTimeout time.Duration
	RateCacheTTL      time.Duration
	TCSThreshold      decimal.Decimal

	// Object storage
	AWSRegion         string
	S3Bucket          string
	CloudFrontBaseURL string
	PresignExpiry     time.Duration

	// Mail
	MailProvider  string
	MailgunDomain string
	MailgunAPIKey string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	OpsEmail      string
	PartnerEmail  string

	// A2 form
	A2TemplateURL   string
	A2LayoutPath    string
	DownloadTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "8h")
	v.SetDefault("JWT_ISSUER", "remittance-backend")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_SOURCE_URL", "https://open.er-api.com/v6")
	v.SetDefault("RATE_SOURCE_TIMEOUT", "10s")
	v.SetDefault("RATE_CACHE_TTL", "60s")
	v.SetDefault("TCS_THRESHOLD", "1000000")
	v.SetDefault("AWS_REGION", "ap-south-1")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("CLOUDFRONT_BASE_URL", "")
	v.SetDefault("PRESIGN_EXPIRY", "15m")
	v.SetDefault("MAIL_PROVIDER", "log")
	v.SetDefault("MAILGUN_DOMAIN", "")
	v.SetDefault("MAILGUN_API_KEY", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "Remittance Desk <no-reply@localhost>")
	v.SetDefault("OPS_EMAIL", "operations@localhost")
	v.SetDefault("FOREX_PARTNER_EMAIL", "partner@localhost")
	v.SetDefault("A2_TEMPLATE_URL", "static/a2_form_template.pdf")
	v.SetDefault("A2_LAYOUT_PATH", "")
	v.SetDefault("DOWNLOAD_TIMEOUT", "30s")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", 8*time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "remittance-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.RefreshTokenExpiryDuration = durationOr(v, "REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.GoogleClientID = v.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	cfg.FrontendBaseURL = v.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")
	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")
	cfg.RedisURL = v.GetString("REDIS_URL")

	cfg.RateSourceURL = strings.TrimRight(v.GetString("RATE_SOURCE_URL"), "/")
	cfg.RateSourceTimeout = durationOr(v, "RATE_SOURCE_TIMEOUT", 10*time.Second)
	cfg.RateCacheTTL = durationOr(v, "RATE_CACHE_TTL", time.Minute)

	threshold, err := decimal.NewFromString(v.GetString("TCS_THRESHOLD"))
	if err != nil || threshold.IsNegative() {
		threshold = decimal.NewFromInt(1000000)
		log.Printf("Warning: Invalid value for TCS_THRESHOLD ('%s'). Defaulting to %s.\n", v.GetString("TCS_THRESHOLD"), threshold)
	}
	cfg.TCSThreshold = threshold

	cfg.AWSRegion = v.GetString("AWS_REGION")
	cfg.S3Bucket = v.GetString("S3_BUCKET")
	if cfg.S3Bucket == "" {
		log.Println("Warning: S3_BUCKET not set. Document uploads will fail.")
	}
	cfg.CloudFrontBaseURL = strings.TrimRight(v.GetString("CLOUDFRONT_BASE_URL"), "/")
	if cfg.CloudFrontBaseURL == "" {
		log.Println("Warning: CLOUDFRONT_BASE_URL not set. Documents cannot be recorded or sent to the forex partner.")
	}
	cfg.PresignExpiry = durationOr(v, "PRESIGN_EXPIRY", 15*time.Minute)

	cfg.MailProvider = strings.ToLower(v.GetString("MAIL_PROVIDER"))
	cfg.MailgunDomain = v.GetString("MAILGUN_DOMAIN")
	cfg.MailgunAPIKey = v.GetString("MAILGUN_API_KEY")
	cfg.SMTPHost = v.GetString("SMTP_HOST")
	cfg.SMTPPort = v.GetInt("SMTP_PORT")
	cfg.SMTPUser = v.GetString("SMTP_USER")
	cfg.SMTPPassword = v.GetString("SMTP_PASSWORD")
	cfg.MailFrom = v.GetString("MAIL_FROM")
	cfg.OpsEmail = v.GetString("OPS_EMAIL")
	cfg.PartnerEmail = v.GetString("FOREX_PARTNER_EMAIL")

	cfg.A2TemplateURL = v.GetString("A2_TEMPLATE_URL")
	cfg.A2LayoutPath = v.GetString("A2_LAYOUT_PATH")
	cfg.DownloadTimeout = durationOr(v, "DOWNLOAD_TIMEOUT", 30*time.Second)

	return cfg
}

// durationOr parses key as a duration, logging and falling back to def on bad input.
func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
