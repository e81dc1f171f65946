package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/api"
	"taskflow/internal/auth"
	"taskflow/internal/config"
	"taskflow/internal/logger"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := repository.NewDB(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("open database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	userSvc := service.NewUserService(userRepo, auth.NewPasswordHasher(cfg.BcryptCost))
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo)

	if cfg.Seed.Username != "" {
		user, created, err := userSvc.EnsureUser(ctx, cfg.Seed.Username, cfg.Seed.Password)
		if err != nil {
			lg.Fatal("seed default account", zap.Error(err))
		}
		if created {
			lg.Info("default account created", zap.String("username", user.Username))
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	handler := api.NewHandler(userSvc, taskSvc, categorySvc, tokens, lg)

	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      api.NewRouter(handler, lg),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		lg.Info("http server started", zap.String("address", cfg.HTTP.Address), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server stopped with error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http server shutdown", zap.Error(err))
	}
	lg.Info("shutdown complete")
}
