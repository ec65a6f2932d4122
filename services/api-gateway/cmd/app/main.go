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

	"learnplatform/internal/infrastructure/cache"
	"learnplatform/internal/infrastructure/repository"
	"learnplatform/internal/infrastructure/security"
	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/client"
	"learnplatform/services/api-gateway/internal/config"
	"learnplatform/services/api-gateway/internal/middleware"
	handlers "learnplatform/services/api-gateway/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.RedisAddr)

	procClient, err := client.NewProcedureClient(cfg.BackendURL, cfg.AnonKey)
	if err != nil {
		log.Fatalf("Failed to connect to procedure service: %v", err)
	}
	defer procClient.Close()
	log.Println("Procedure service at", cfg.BackendURL)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db, rdb)
	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)
	sessionCache := cache.NewSessionCache(rdb)

	authUC := usecase.NewAuthUseCase(procClient, sessionCache, security.NewMultiVerifier(), tokenManager)
	sessionUC := usecase.NewSessionUseCase(procClient, sessionCache, tokenManager)
	progressUC := usecase.NewProgressUseCase(lessonRepo, progressRepo, enrollmentRepo, cache.NewAttemptStore(rdb))

	h := handlers.Handlers{
		Auth:    handlers.NewAuthHandler(authUC, handlers.CookieConfig{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}),
		Session: handlers.NewSessionHandler(usecase.NewHomeUseCase(procClient)),
		Course:  handlers.NewCourseHandler(usecase.NewCourseUseCase(courseRepo, userRepo, enrollmentRepo)),
		Lesson:  handlers.NewLessonHandler(usecase.NewLessonUseCase(lessonRepo, courseRepo, progressRepo), progressUC),
		Catalog: handlers.NewCatalogHandler(usecase.NewCatalogUseCase(catalogRepo)),
		User:    handlers.NewUserHandler(usecase.NewProfileUseCase(userRepo, courseRepo, lessonRepo, enrollmentRepo, progressRepo)),
	}

	router := handlers.NewRouter(h, sessionUC, middleware.NewRateLimiter(rdb), cfg.Origins())

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("API Gateway running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
