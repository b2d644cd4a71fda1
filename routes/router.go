package routes

import (
	"net/http"
	"time"

	"transport-report-be/controllers"
	"transport-report-be/middlewares"
	"transport-report-be/services"
	"transport-report-be/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options carries everything NewRouter wires together
type Options struct {
	Sessions    *session.Manager
	Reports     *services.ReportService
	Redis       *redis.Client // nil disables submission rate limiting
	Logger      *zap.Logger
	CallTimeout time.Duration
	Cookie      controllers.CookieSettings
	CORSOrigins []string

	RateLimitPrefix  string
	SubmitRateLimit  int
	SubmitRateWindow time.Duration
}

// NewRouter builds the gin engine with every route and middleware
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.Recovery(opts.Logger))
	r.Use(middlewares.RequestLogger(opts.Logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	requireSession := middlewares.AuthMiddleware(opts.Sessions, opts.CallTimeout, opts.Logger)
	limitSubmissions := middlewares.SubmissionRateLimiter(
		opts.Redis, opts.RateLimitPrefix, opts.SubmitRateLimit, opts.SubmitRateWindow, opts.Logger)

	AuthRoutes(r, controllers.NewAuthController(opts.Sessions, opts.CallTimeout, opts.Cookie), requireSession)
	ReportRoutes(r, controllers.NewReportController(opts.Reports), requireSession, limitSubmissions)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
