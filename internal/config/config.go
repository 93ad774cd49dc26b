package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	JWT      JWTConfig
	Uploads  UploadConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ClientOrigin string
	// PublicBaseURL is the externally reachable base used when building
	// links to uploaded images.
	PublicBaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AdminConfig struct {
	Username string
	Password string
}

type JWTConfig struct {
	Secret      string
	AdminExpiry int // in hours
	UserExpiry  int // in days
}

type UploadConfig struct {
	// Dir is the local directory product images are written to.
	Dir string
	// PathPrefix is the URL prefix uploaded files are served under.
	PathPrefix string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "4000")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:3000")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:4000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "changeme")
	viper.SetDefault("JWT_SECRET", "supersecretkey")
	viper.SetDefault("JWT_ADMIN_EXPIRY", 24)
	viper.SetDefault("JWT_USER_EXPIRY", 30)
	viper.SetDefault("UPLOAD_DIR", "uploads/products")
	viper.SetDefault("UPLOAD_PATH_PREFIX", "/uploads/products")

	return &Config{
		Server: ServerConfig{
			Port:          viper.GetString("SERVER_PORT"),
			Env:           viper.GetString("SERVER_ENV"),
			ClientOrigin:  viper.GetString("CLIENT_ORIGIN"),
			PublicBaseURL: viper.GetString("PUBLIC_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			AdminExpiry: viper.GetInt("JWT_ADMIN_EXPIRY"),
			UserExpiry:  viper.GetInt("JWT_USER_EXPIRY"),
		},
		Uploads: UploadConfig{
			Dir:        viper.GetString("UPLOAD_DIR"),
			PathPrefix: viper.GetString("UPLOAD_PATH_PREFIX"),
		},
	}
}
