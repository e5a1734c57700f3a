package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Resume placement modes
const (
	ResumeStorageInline = "inline"
	ResumeStorageS3     = "s3"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	Environment string
	ServiceName string
	AutoMigrate bool
	// Request handling
	RequestTimeoutSeconds int
	// Candidate intake
	AllowedEmailDomain string
	ResumeMaxBytes     int64
	ResumeStorage      string // inline | s3
	// Object storage (RESUME_STORAGE=s3)
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Endpoint        string
	// Antivirus (empty address disables scanning)
	ClamAVAddress        string
	ClamAVTimeoutSeconds int
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitThreshold     int
}

func LoadConfig() (*Config, error) {
	// Load .env file (local only, ignored when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServiceName: getEnv("SERVICE_NAME", "go-careers-backend"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", true),

		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", 15),

		AllowedEmailDomain: strings.ToLower(strings.TrimSpace(getEnv("ALLOWED_EMAIL_DOMAIN", "gmail.com"))),
		ResumeMaxBytes:     int64(getEnvInt("RESUME_MAX_BYTES", 3<<20)), // 3 MiB
		ResumeStorage:      strings.ToLower(getEnv("RESUME_STORAGE", ResumeStorageInline)),

		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),

		ClamAVAddress:        getEnv("CLAMAV_ADDRESS", ""),
		ClamAVTimeoutSeconds: getEnvInt("CLAMAV_TIMEOUT_SECONDS", 30),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60), // 1 minute window
		RateLimitThreshold:     getEnvInt("RATE_LIMIT_THRESHOLD", 20),      // 20 writes per window
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	if cfg.ResumeStorage != ResumeStorageInline && cfg.ResumeStorage != ResumeStorageS3 {
		log.Printf("WARNING: unknown RESUME_STORAGE %q, using inline", cfg.ResumeStorage)
		cfg.ResumeStorage = ResumeStorageInline
	}
	if cfg.ResumeStorage == ResumeStorageS3 && cfg.S3Bucket == "" {
		log.Println("WARNING: RESUME_STORAGE=s3 without S3_BUCKET, using inline")
		cfg.ResumeStorage = ResumeStorageInline
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 15
	}
	if cfg.ResumeMaxBytes <= 0 {
		cfg.ResumeMaxBytes = 3 << 20
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production CORS rules.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
