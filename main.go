package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transport-report-be/config"
	"transport-report-be/controllers"
	"transport-report-be/logger"
	"transport-report-be/repository"
	"transport-report-be/routes"
	"transport-report-be/services"
	"transport-report-be/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, loadedEnv, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if !loadedEnv {
		zlog.Info("No .env file found")
	}

	var redisClient *redis.Client
	if cfg.RedisAddress != "" {
		redisClient, err = config.ConnectRedis(cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			zlog.Fatal("Redis connection failed", zap.Error(err))
		}
		defer redisClient.Close()
		zlog.Info("Connected to Redis", zap.String("addr", cfg.RedisAddress))
	}

	repo, closeRepo, err := openRepository(cfg, redisClient, zlog)
	if err != nil {
		zlog.Fatal("Report store unavailable", zap.String("store", cfg.ReportStore), zap.Error(err))
	}
	defer closeRepo()

	if cfg.SeedDemoReports {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.CallTimeout)
		n, err := services.SeedDemoReports(ctx, repo, time.Now())
		cancel()
		if err != nil {
			zlog.Fatal("Seeding demo reports failed", zap.Error(err))
		}
		zlog.Info("Demo reports seeded", zap.Int("count", n))
	}

	var store session.Store = session.NewMemoryStore()
	if redisClient != nil {
		store = session.NewRedisStore(redisClient)
	}
	directory, err := session.NewDirectory(bcrypt.DefaultCost, cfg.SessionEnforceRole)
	if err != nil {
		zlog.Fatal("Building staff directory failed", zap.Error(err))
	}
	sessions := session.NewManager(directory, store, cfg.JWTSecret, cfg.SessionTTL, zlog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cookie := controllers.CookieSettings{Domain: cfg.Domain, Secure: cfg.IsProduction()}
	// For production, don't set domain to allow cross-origin cookies
	if cfg.IsProduction() {
		cookie.Domain = ""
	}

	r := routes.NewRouter(routes.Options{
		Sessions:         sessions,
		Reports:          services.NewReportService(repo, cfg.CallTimeout, zlog),
		Redis:            redisClient,
		Logger:           zlog,
		CallTimeout:      cfg.CallTimeout,
		Cookie:           cookie,
		CORSOrigins:      cfg.CORSOrigins,
		RateLimitPrefix:  cfg.RateLimitPrefix,
		SubmitRateLimit:  cfg.SubmitRateLimit,
		SubmitRateWindow: cfg.SubmitRateWindow,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zlog.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("Listening", zap.String("port", cfg.Port), zap.String("store", cfg.ReportStore))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
	zlog.Info("Server closed")
}

// openRepository returns the configured report backend and a cleanup func
func openRepository(cfg *config.Config, redisClient *redis.Client, zlog *zap.Logger) (repository.ReportRepository, func(), error) {
	switch cfg.ReportStore {
	case config.StoreMongo:
		client, db, err := config.ConnectDB(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		zlog.Info("MongoDB connection established successfully!", zap.String("database", cfg.MongoDatabase))

		repo := repository.NewMongoRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.CallTimeout)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = config.DisconnectDB(client)
			return nil, nil, err
		}
		return repo, func() {
			if err := config.DisconnectDB(client); err != nil {
				zlog.Warn("MongoDB disconnect failed", zap.Error(err))
			}
		}, nil
	case config.StoreRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis report store needs REDIS_ADDRESS")
		}
		return repository.NewRedisRepository(redisClient, zlog), func() {}, nil
	default:
		return repository.NewMemoryRepository(), func() {}, nil
	}
}
