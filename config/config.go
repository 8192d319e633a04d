package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server      Server
	Database    Database
	Redis       Redis
	Admin       Admin
	RateLimit   RateLimit
	Log         Log
	SeedOnStart bool
}

type Server struct {
	Port               string
	GinMode            string
	CORSAllowedOrigins []string
	// TrustedProxies are the proxy addresses or CIDRs allowed to set X-Forwarded-For for gin's ClientIP.
	TrustedProxies []string
}

type Database struct {
	Driver     string // "postgres" or "sqlite"
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type Redis struct {
	URL string
}

type Admin struct {
	OwnerEmail   string
	Password     string
	SecretKey    string
	JWTSecret    string
	TokenTTL     time.Duration
	CookieSecure bool
}

type RateLimit struct {
	Window        time.Duration
	APIMax        int
	NewsletterMax int
	QuizEmailMax  int
	PerEmailMax   int
	AdminLoginMax int
	BurstRPS      float64
	BurstSize     int
}

type Log struct {
	Level  string
	Pretty bool
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "release")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("SQLITE_PATH", "mybeing.db")

	viper.SetDefault("ADMIN_TOKEN_TTL", "24h")
	viper.SetDefault("COOKIE_SECURE", true)

	viper.SetDefault("RATE_LIMIT_WINDOW", "10m")
	viper.SetDefault("RATE_LIMIT_API_MAX", 10)
	viper.SetDefault("RATE_LIMIT_NEWSLETTER_MAX", 5)
	viper.SetDefault("RATE_LIMIT_QUIZ_EMAIL_MAX", 5)
	viper.SetDefault("RATE_LIMIT_PER_EMAIL_MAX", 3)
	viper.SetDefault("RATE_LIMIT_ADMIN_LOGIN_MAX", 5)
	viper.SetDefault("BURST_RPS", 20)
	viper.SetDefault("BURST_SIZE", 40)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)
	viper.SetDefault("SEED_ON_START", true)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	config.Server.TrustedProxies = splitList(viper.GetString("TRUSTED_PROXIES"))

	config.Database.Driver = strings.ToLower(viper.GetString("DATABASE_DRIVER"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.SQLitePath = viper.GetString("SQLITE_PATH")

	config.Redis.URL = viper.GetString("REDIS_URL")

	config.Admin.OwnerEmail = viper.GetString("OWNER_EMAIL")
	config.Admin.Password = viper.GetString("ADMIN_PASSWORD")
	config.Admin.SecretKey = viper.GetString("ADMIN_SECRET_KEY")
	config.Admin.JWTSecret = viper.GetString("JWT_SECRET")
	config.Admin.TokenTTL = viper.GetDuration("ADMIN_TOKEN_TTL")
	config.Admin.CookieSecure = viper.GetBool("COOKIE_SECURE")

	config.RateLimit.Window = viper.GetDuration("RATE_LIMIT_WINDOW")
	config.RateLimit.APIMax = viper.GetInt("RATE_LIMIT_API_MAX")
	config.RateLimit.NewsletterMax = viper.GetInt("RATE_LIMIT_NEWSLETTER_MAX")
	config.RateLimit.QuizEmailMax = viper.GetInt("RATE_LIMIT_QUIZ_EMAIL_MAX")
	config.RateLimit.PerEmailMax = viper.GetInt("RATE_LIMIT_PER_EMAIL_MAX")
	config.RateLimit.AdminLoginMax = viper.GetInt("RATE_LIMIT_ADMIN_LOGIN_MAX")
	config.RateLimit.BurstRPS = viper.GetFloat64("BURST_RPS")
	config.RateLimit.BurstSize = viper.GetInt("BURST_SIZE")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")
	config.SeedOnStart = viper.GetBool("SEED_ON_START")

	// Secrets stay out of the startup log.
	log.Info().
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Bool("redis", config.Redis.URL != "").
		Bool("admin_configured", config.Admin.OwnerEmail != "" && config.Admin.Password != "").
		Dur("rate_limit_window", config.RateLimit.Window).
		Msg("Config loaded")
	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
