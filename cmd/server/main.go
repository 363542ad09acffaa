package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/Vilbert55/yatube/config"
	"github.com/Vilbert55/yatube/internal/api/handler"
	"github.com/Vilbert55/yatube/internal/api/router"
	"github.com/Vilbert55/yatube/internal/repository"
	"github.com/Vilbert55/yatube/internal/service"
	"github.com/Vilbert55/yatube/pkg/cache"
	"github.com/Vilbert55/yatube/pkg/database"
	"github.com/Vilbert55/yatube/pkg/logger"
	"github.com/Vilbert55/yatube/pkg/tracing"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing := must(tracing.Init(ctx, cfg))
	defer func() { _ = shutdownTracing(ctx) }()

	db := must(database.InitDB(cfg))
	rdb := cache.NewClient(cfg)
	feedCache := cache.NewFeedCache(rdb, cfg.Cache.FeedTTL)

	// repositories & services
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	relSvc := service.NewRelationshipService(followRepo)
	feedSvc := service.NewFeedService(postRepo, userRepo, groupRepo, followRepo)
	postSvc := service.NewPostService(postRepo, userRepo, groupRepo, commentRepo, feedCache, cfg.Media.Dir)
	commentSvc := service.NewCommentService(commentRepo, postRepo)

	h := handler.New(feedSvc, postSvc, commentSvc, relSvc, authSvc, groupRepo, userRepo, feedCache, cfg)
	engine := router.New(cfg, h, authSvc)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
