package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Session  SessionConfig
	Email    EmailConfig
	Admin    AdminSeedConfig
}

type AppConfig struct {
	Name         string
	Port         string
	Debug        bool
	LogPath      string
	PageSize     int
	StatusPolicy string
	MaxUploadMB  int64
}

type DatabaseConfig struct {
	Driver      string
	MongoURI    string
	Name        string
	PostgresDSN string
	MaxConns    int32
}

type StorageConfig struct {
	Driver     string
	LocalRoot  string
	LocalURL   string
	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string
}

type SessionConfig struct {
	Driver        string
	Secret        string
	CookieName    string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	Revalidate    bool
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// AdminSeedConfig holds the credentials used by the seed-admin command.
type AdminSeedConfig struct {
	Name     string
	Email    string
	Password string
}

func LoadConfig() (*Config, error) {
	// .env is optional, real environment variables still apply
	_ = godotenv.Load()

	viper.SetDefault("APP_NAME", "print-shop")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAGE_SIZE", 5)
	viper.SetDefault("STATUS_POLICY", "permissive")
	viper.SetDefault("MAX_UPLOAD_MB", 16)

	viper.SetDefault("DB_DRIVER", "mongo")
	viper.SetDefault("DB_NAME", "percetakan")
	viper.SetDefault("DB_MAX_CONNS", 10)

	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_LOCAL_ROOT", "static")
	viper.SetDefault("STORAGE_URL", "/static")
	viper.SetDefault("S3_REGION", "us-east-1")

	viper.SetDefault("SESSION_DRIVER", "cookie")
	viper.SetDefault("SESSION_COOKIE", "percetakan_session")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("SESSION_REVALIDATE", true)

	viper.SetDefault("SMTP_PORT", 587)

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:         viper.GetString("APP_NAME"),
			Port:         viper.GetString("PORT"),
			Debug:        viper.GetBool("DEBUG"),
			LogPath:      viper.GetString("LOG_PATH"),
			PageSize:     viper.GetInt("PAGE_SIZE"),
			StatusPolicy: strings.ToLower(viper.GetString("STATUS_POLICY")),
			MaxUploadMB:  viper.GetInt64("MAX_UPLOAD_MB"),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(viper.GetString("DB_DRIVER")),
			MongoURI:    viper.GetString("MONGODB_URI"),
			Name:        viper.GetString("DB_NAME"),
			PostgresDSN: viper.GetString("POSTGRES_DSN"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(viper.GetString("STORAGE_DRIVER")),
			LocalRoot:  viper.GetString("STORAGE_LOCAL_ROOT"),
			LocalURL:   viper.GetString("STORAGE_URL"),
			S3Bucket:   viper.GetString("S3_BUCKET"),
			S3Region:   viper.GetString("S3_REGION"),
			S3Key:      viper.GetString("S3_KEY"),
			S3Secret:   viper.GetString("S3_SECRET"),
			S3Endpoint: viper.GetString("S3_ENDPOINT"),
			S3URL:      viper.GetString("S3_URL"),
		},
		Session: SessionConfig{
			Driver:        strings.ToLower(viper.GetString("SESSION_DRIVER")),
			Secret:        viper.GetString("SESSION_SECRET"),
			CookieName:    viper.GetString("SESSION_COOKIE"),
			TTL:           time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			Revalidate:    viper.GetBool("SESSION_REVALIDATE"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Admin: AdminSeedConfig{
			Name:     viper.GetString("ADMIN_NAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mongo":
		if c.Database.MongoURI == "" {
			return fmt.Errorf("config: MONGODB_URI is required for the mongo driver")
		}
	case "postgres":
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("config: POSTGRES_DSN is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required for the s3 driver")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Session.Driver {
	case "cookie":
		if c.Session.Secret == "" {
			return fmt.Errorf("config: SESSION_SECRET is required for the cookie driver")
		}
	case "redis":
	default:
		return fmt.Errorf("config: unknown SESSION_DRIVER %q", c.Session.Driver)
	}

	switch c.App.StatusPolicy {
	case "permissive", "strict":
	default:
		return fmt.Errorf("config: unknown STATUS_POLICY %q", c.App.StatusPolicy)
	}

	if c.App.PageSize < 1 {
		c.App.PageSize = 5
	}

	return nil
}
