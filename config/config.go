package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort    string
	PublicBaseURL string
	CORSOrigins   []string

	Database Database
	SMTP     SMTP
	Storage  Storage
	Admin    Admin

	EmailTimeout time.Duration
}

type Database struct {
	// Driver is "postgres" or "sqlite".
	Driver string
	URL    string
}

type SMTP struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
	From     string
}

type Storage struct {
	// Driver is "local" or "s3".
	Driver    string
	UploadDir string

	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

type Admin struct {
	Password  string
	SecretKey string
	TokenTTL  time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables")
	}

	port := getEnv("SERVER_PORT", "8080")

	return &Config{
		ServerPort:    port,
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),

		Database: Database{
			Driver: getEnv("DB_DRIVER", "postgres"),
			URL:    getEnv("DB_URL", ""),
		},

		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Secure:   getEnvAsBool("SMTP_SECURE", false),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", getEnv("SMTP_USER", "")),
		},

		Storage: Storage{
			Driver:            getEnv("STORAGE_DRIVER", "local"),
			UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
			S3Endpoint:        getEnv("S3_ENDPOINT", ""),
			S3Region:          getEnv("S3_REGION", "us-east-1"),
			S3Bucket:          getEnv("S3_BUCKET", ""),
			S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		},

		Admin: Admin{
			Password:  getEnv("ADMIN_PASSWORD", ""),
			SecretKey: getEnv("SECRET_KEY", ""),
			TokenTTL:  getEnvDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		},

		EmailTimeout: getEnvDuration("EMAIL_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		log.Warnf("%s=%q is not an integer, using default %d", key, v, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
			return d
		}
		log.Warnf("%s=%q is not a valid duration, using default %s", key, v, fallback)
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
