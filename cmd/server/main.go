package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"schedule-service/config"
	"schedule-service/internal/cache"
	"schedule-service/internal/database"
	"schedule-service/internal/handler"
	"schedule-service/internal/middleware"
	"schedule-service/internal/queue"
	"schedule-service/internal/repository"
	"schedule-service/internal/service"
	"schedule-service/internal/worker"
	"schedule-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	defer logger.L.Sync()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduleRepo := repository.NewScheduleRepository(pool)
	scheduleService := service.NewScheduleService(scheduleRepo)

	ingestQueue, err := queue.NewRedisStreamScheduleQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize ingest queue: %v", err)
	}
	dedup := cache.NewRedisMessageDeduplicator(rdb, 24*time.Hour)

	ingestWorker := worker.NewIngestWorker(scheduleService, ingestQueue, dedup)
	if err := ingestWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start ingest worker: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	scheduleHandler.RegisterRoutes(router, middleware.Auth(cfg.Auth.JWTSecret))

	pubsubHandler := handler.NewPubsubHandler(ingestQueue)
	pubsubHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
