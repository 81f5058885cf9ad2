package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/domain"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/handler"
	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/middleware/auth"
	"yamdb/internal/throttle"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}

	log := setupLogger(cfg)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	// the per-email cooldown is optional; without redis only the per-IP limiter applies
	var signupThrottle service.SignupThrottle
	if cfg.RedisURL != "" {
		t, err := throttle.NewSignupThrottle(cfg.RedisURL, cfg.SignupCooldown)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer t.Close()
		signupThrottle = t
	} else {
		log.Warn("REDIS_URL not set, per-email signup cooldown disabled")
	}

	codes, err := auth.NewConfirmationCodes(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	if err != nil {
		log.Fatalf("Failed to set up confirmation codes: %v", err)
	}
	sender := mailer.NewLogSender(cfg.MailFrom, log)

	done := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.SignupRateLimit, cfg.SignupRateBurst, log)
	limiter.StartCleanup(time.Minute, done)

	router := newRouter(db, cfg, log, routerDeps{
		codes:    codes,
		sender:   sender,
		throttle: signupThrottle,
		limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infof("YaMDb API starting on port %d", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down server...")
	case err := <-errChan:
		log.Errorf("Failed to start HTTP server: %v", err)
	}
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
	log.Info("Server shutdown complete")
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	if cfg.LogFormat == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	}
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

type routerDeps struct {
	codes    *auth.ConfirmationCodes
	sender   mailer.Sender
	throttle service.SignupThrottle
	limiter  *middleware.RateLimiter
}

func newRouter(db *gorm.DB, cfg *config.Config, log *logrus.Logger, deps routerDeps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidators()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, deps.codes, deps.sender, deps.throttle, cfg, log)
	userService := service.NewUserService(userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	genreService := service.NewGenreService(genreRepo, log)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, domain.SystemClock{}, log)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, log)
	commentService := service.NewCommentService(commentRepo, reviewRepo, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	handler.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}).RegisterRoutes(r)

	v1 := r.Group("/api/v1", middleware.RequestTimeout(cfg.RequestTimeout), middleware.AuthMiddleware(authService))

	var signupLimiter gin.HandlerFunc
	if deps.limiter != nil {
		signupLimiter = deps.limiter.Middleware()
	}
	handler.NewAuthHandler(authService, signupLimiter).RegisterRoutes(v1.Group("/auth"))
	handler.NewUserHandler(userService).RegisterRoutes(v1.Group("/users"))
	handler.NewCategoryHandler(categoryService).RegisterRoutes(v1.Group("/categories"))
	handler.NewGenreHandler(genreService).RegisterRoutes(v1.Group("/genres"))

	titles := v1.Group("/titles")
	handler.NewTitleHandler(titleService).RegisterRoutes(titles)
	handler.NewReviewHandler(reviewService).RegisterRoutes(titles)
	handler.NewCommentHandler(commentService).RegisterRoutes(titles)

	return r
}
