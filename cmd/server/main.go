package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stackit/internal/config"
	"stackit/internal/db"
	"stackit/internal/logger"
	"stackit/internal/middleware"
	"stackit/internal/router"
	"stackit/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, !cfg.Production())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !dotenv {
		log.Info("no .env file found, reading env vars from system")
	}

	if err := db.Init(cfg.DatabaseURL, log); err != nil {
		log.Fatal("database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 异步排名服务
	ranking := services.NewRankingService(db.DB, log)
	ranking.Start(ctx)
	ranking.StartScheduledRefresh(ctx)

	notifications := services.NewNotificationService(db.DB, log, true)
	users := services.NewUserService(db.DB)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.Recovery(log))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup()
			}
		}
	}()
	r.Use(middleware.RateLimit(limiter))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("stackit_session", store))

	router.RegisterRoutes(r, router.Services{
		DB:            db.DB,
		Users:         users,
		Questions:     services.NewQuestionService(db.DB, ranking),
		Answers:       services.NewAnswerService(db.DB, log, notifications, ranking),
		Votes:         services.NewVoteService(db.DB, log, ranking),
		Notifications: notifications,
		Reputation:    services.NewReputationService(db.DB, cfg.LeaderboardTTL),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("StackIt server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
