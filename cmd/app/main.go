package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Niku17/JobSift/internal/config"
	v1 "github.com/Niku17/JobSift/internal/controller/http/v1"
	"github.com/Niku17/JobSift/internal/domain/usecase"
	mongoRepo "github.com/Niku17/JobSift/internal/repository/mongo"
	"github.com/Niku17/JobSift/internal/repository/rabbitmq"
	redisRepo "github.com/Niku17/JobSift/internal/repository/redis"
	s3Repo "github.com/Niku17/JobSift/internal/repository/s3"
	mongoClient "github.com/Niku17/JobSift/pkg/client/mongo"
	redisClient "github.com/Niku17/JobSift/pkg/client/redis"
	s3Client "github.com/Niku17/JobSift/pkg/client/s3"
	"github.com/Niku17/JobSift/pkg/middleware"
)

const (
	eventsExchange   = "jobs.exchange"
	eventsRoutingKey = "jobs.events"
	auditQueue       = "jobs.audit.q"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := mongoClient.NewMongoDatabase(ctx, mongoClient.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
	})
	if err != nil {
		logger.Fatal("mongo", zap.Error(err))
	}
	defer db.Client().Disconnect(context.Background())

	rdb, err := redisClient.NewRedisClient(ctx, redisClient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	storage, err := s3Client.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		logger.Fatal("s3", zap.Error(err))
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Fatal("rabbitmq", zap.Error(err))
	}
	defer conn.Close()

	publisher, err := rabbitmq.NewPublisher(conn, eventsExchange, eventsRoutingKey)
	if err != nil {
		logger.Fatal("rabbitmq publisher", zap.Error(err))
	}

	jobRepo := mongoRepo.NewJobRepo(db)
	userRepo := mongoRepo.NewUserRepo(db)
	auditRepo := mongoRepo.NewAuditRepo(db)
	jobCache := redisRepo.NewJobCache(rdb, cfg.JobCacheTTL)
	resumes := s3Repo.NewResumeRepo(storage)

	registry := usecase.NewJobRegistry(jobRepo, userRepo, jobCache, publisher, logger)
	tracker := usecase.NewApplicationTracker(jobRepo, userRepo, jobCache, resumes, publisher, logger)
	auth := usecase.NewAuthUseCase(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	profile := usecase.NewProfileUseCase(userRepo, resumes)
	trail := usecase.NewAuditTrail(auditRepo)

	consumer, err := rabbitmq.NewAuditConsumer(conn, eventsExchange, eventsRoutingKey+".#", auditQueue, trail, logger)
	if err != nil {
		logger.Fatal("rabbitmq consumer", zap.Error(err))
	}
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error("audit consumer stopped", zap.Error(err))
		}
	}()

	jobHandler := v1.NewJobHandler(registry, tracker)
	authHandler := v1.NewAuthHandler(auth)
	userHandler := v1.NewUserHandler(profile)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RedisClient: rdb,
		Limit:       cfg.RateLimit,
		Window:      cfg.RateLimitWindow,
		KeyPrefix:   "rl:",
	}))
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/:id", jobHandler.Get)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		{
			authed.GET("/jobs/employer", middleware.RequireEmployer(), jobHandler.EmployerJobs)
			authed.GET("/jobs/applications", jobHandler.SeekerApplications)
			authed.POST("/jobs", middleware.RequireEmployer(), jobHandler.Create)
			authed.PUT("/jobs/:id", middleware.RequireEmployer(), jobHandler.Update)
			authed.DELETE("/jobs/:id", middleware.RequireEmployer(), jobHandler.Delete)
			authed.POST("/jobs/:id/apply", jobHandler.Apply)
			authed.GET("/jobs/:id/applicants", middleware.RequireEmployer(), jobHandler.Applicants)
			authed.PUT("/jobs/:id/applicants/:applicantId", middleware.RequireEmployer(), jobHandler.UpdateApplicantStatus)

			authed.GET("/users/me", userHandler.Me)
			authed.PUT("/users/me", userHandler.UpdateMe)
			authed.POST("/users/me/resume", userHandler.UploadResume)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		logger.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
}
