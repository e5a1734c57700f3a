package v1

import (
	"net/http"
	"strings"
	"time"

	"go-careers-backend/config"
	"go-careers-backend/internal/delivery/http/middleware"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/audit"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	JobUC         domain.JobUsecase
	CandidateUC   domain.CandidateUsecase
	ApplicationUC domain.ApplicationUsecase
	AdminUC       domain.AdminUsecase
	HealthUC      domain.HealthUsecase
	Config        *config.Config
	Audit         *audit.Logger
	// Prometheus scrape handler; /metrics is not mounted when nil
	MetricsHandler http.Handler
	// Redis client for rate limiting; nil uses the shared client (or the in-memory fallback)
	RedisClient *goredis.Client
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(allowedOrigins(cfg.FrontendURL), cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	if cfg.RequestTimeoutSeconds > 0 {
		r.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second))
	}
	r.Use(middleware.ErrorHandler())

	root := r.Group("")

	NewHealthHandler(root, deps.HealthUC)

	// Swagger
	root.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.MetricsHandler != nil {
		root.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	candidateLimit := middleware.WriteRateLimitConfig("candidates", cfg.RateLimitThreshold, window)
	candidateLimit.Client = deps.RedisClient
	applyLimit := middleware.WriteRateLimitConfig("apply", cfg.RateLimitThreshold, window)
	applyLimit.Client = deps.RedisClient

	NewJobHandler(root, deps.JobUC)
	NewCandidateHandler(root, deps.CandidateUC, cfg.ResumeMaxBytes,
		middleware.RateLimitMiddleware(candidateLimit, deps.Audit))
	NewApplicationHandler(root, deps.ApplicationUC,
		middleware.RateLimitMiddleware(applyLimit, deps.Audit))
	NewAdminHandler(root, deps.AdminUC)

	return r
}

// allowedOrigins splits a comma-separated FRONTEND_URL into CORS origins.
func allowedOrigins(frontendURL string) []string {
	var origins []string
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
