package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gayu2216/MarketPulse/internal/authz"
	acctcmd "github.com/gayu2216/MarketPulse/internal/command"
	"github.com/gayu2216/MarketPulse/internal/config"
	"github.com/gayu2216/MarketPulse/internal/database"
	"github.com/gayu2216/MarketPulse/internal/deletion"
	"github.com/gayu2216/MarketPulse/internal/events"
	"github.com/gayu2216/MarketPulse/internal/handler"
	"github.com/gayu2216/MarketPulse/internal/metrics"
	"github.com/gayu2216/MarketPulse/internal/middleware"
	acctqry "github.com/gayu2216/MarketPulse/internal/query"
	redisClient "github.com/gayu2216/MarketPulse/internal/redis"
	"github.com/gayu2216/MarketPulse/internal/repository"
	"github.com/gayu2216/MarketPulse/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database connection (write store)
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis connection (read model store + event streaming)
	redis, err := redisClient.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	writeRepo := repository.NewAccountWriteRepository(db)
	readRepo := repository.NewAccountReadRepository(db, redis.Client)
	uploadRepo := repository.NewUploadRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	authorizer := authz.NewRoleAuthorizer()

	commandSvc := acctcmd.NewAccountCommandService(writeRepo, readRepo, uploadRepo, auditRepo, publisher, collector)
	querySvc := acctqry.NewAccountQueryService(readRepo, uploadRepo, authorizer)
	deletionSvc := deletion.NewService(writeRepo, authorizer, readRepo, publisher, collector)

	accountHandler := handler.NewAccountHandler(commandSvc, querySvc, deletionSvc)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Setup router
	router := gin.Default()

	secret := []byte(cfg.JWTSecret)
	v1 := router.Group("/v1/accounts")
	{
		v1.POST("", rateLimiter.ByIP(), accountHandler.RegisterAccount)

		authed := v1.Group("", middleware.AuthMiddleware(secret), rateLimiter.ByUser())
		authed.GET("/:accountId", accountHandler.GetAccount)
		authed.PATCH("/:accountId", accountHandler.UpdateAccount)
		authed.DELETE("/:accountId", accountHandler.DeleteAccount)
		authed.POST("/:accountId/uploads", accountHandler.RegisterUpload)
		authed.GET("/:accountId/uploads", accountHandler.ListUploads)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Deletion reaper: resumes cleanups stranded in pending_deletion
	go func() {
		reaper := worker.NewReaper(deletionSvc, cfg.ReaperInterval, cfg.ReaperBatchSize, collector)
		reaper.Run(ctx)
	}()

	// Deletion audit subscriber, handled by the command service
	go func() {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "account-service-audit",
			Consumer: "audit-consumer-1",
			Stream:   events.AccountEventsStream,
			Handler:  commandSvc.HandleAccountEvent,
		})
		if err := subscriber.Start(ctx); err != nil {
			log.Printf("Subscriber stopped: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Account service starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
