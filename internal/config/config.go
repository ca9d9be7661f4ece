package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       string
	LogFile        string
	FrontendOrigin string

	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	AdminSecret       string
	AdminTokenTTL     time.Duration
	CustomerSecret    string
	BcryptCost        int

	PersistDriver   string // file | sqlite
	ProductsPath    string
	HistoryPath     string
	SnapshotDSN     string
	PersistErrors   string // ignore | propagate
	SeedDemoOnEmpty bool

	SMTP             SMTP
	ContactRecipient string

	OAuthDevAutoLogin bool

	Payoneer Payoneer
}

type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	UseTLS   bool
}

type Payoneer struct {
	MerchantID    string
	APIKey        string
	APISecret     string
	WebhookSecret string
}

// Configured reports whether all checkout credentials are present.
func (p Payoneer) Configured() bool {
	return p.MerchantID != "" && p.APIKey != "" && p.APISecret != ""
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1" || v == "yes"
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Load reads the process environment, merging a local .env file when one exists.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	adminSecret := env("ADMIN_SECRET", "change-me")
	ttl, err := time.ParseDuration(env("ADMIN_TOKEN_TTL", "12h"))
	if err != nil || ttl <= 0 {
		ttl = 12 * time.Hour
	}

	driver := strings.ToLower(env("PERSIST_DRIVER", "file"))
	if driver != "sqlite" {
		driver = "file"
	}
	policy := strings.ToLower(env("PERSIST_ERRORS", "ignore"))
	if policy != "propagate" {
		policy = "ignore"
	}

	cfg := Config{
		Port:           env("PORT", "8080"),
		Env:            env("APP_ENV", "dev"),
		LogLevel:       env("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
		FrontendOrigin: env("FRONTEND_ORIGIN", "*"),

		AdminEmail:        env("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminSecret:       adminSecret,
		AdminTokenTTL:     ttl,
		CustomerSecret:    env("CUSTOMER_SECRET", adminSecret),
		BcryptCost:        envInt("BCRYPT_COST", 12),

		PersistDriver:   driver,
		ProductsPath:    env("PRODUCTS_DB_PATH", "products.json"),
		HistoryPath:     env("PRODUCTS_HISTORY_PATH", "products_history.json"),
		SnapshotDSN:     env("SNAPSHOT_DSN", "storefront.db"),
		PersistErrors:   policy,
		SeedDemoOnEmpty: envBool("SEED_DEMO", false),

		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     env("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			UseTLS:   envBool("SMTP_USE_TLS", true),
		},
		OAuthDevAutoLogin: envBool("OAUTH_DEV_AUTO_LOGIN", false),
		Payoneer: Payoneer{
			MerchantID:    os.Getenv("PAYONEER_MERCHANT_ID"),
			APIKey:        os.Getenv("PAYONEER_API_KEY"),
			APISecret:     os.Getenv("PAYONEER_API_SECRET"),
			WebhookSecret: os.Getenv("PAYONEER_WEBHOOK_SECRET"),
		},
	}
	cfg.ContactRecipient = env("CONTACT_RECIPIENT", cfg.AdminEmail)

	log.Printf("[config] PORT=%s APP_ENV=%s PERSIST_DRIVER=%s PERSIST_ERRORS=%s PRODUCTS_DB_PATH=%s PRODUCTS_HISTORY_PATH=%s",
		cfg.Port, cfg.Env, cfg.PersistDriver, cfg.PersistErrors, cfg.ProductsPath, cfg.HistoryPath)
	return cfg
}

// OAuthClient returns the client id and redirect url configured for provider.
// Either is empty when the provider is not set up.
func OAuthClient(provider string) (clientID, redirectURL string) {
	p := strings.ToUpper(provider)
	return os.Getenv(p + "_CLIENT_ID"), os.Getenv(p + "_REDIRECT_URL")
}
