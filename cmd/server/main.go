package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amantech05/Gradlink/internal/config"
	"github.com/amantech05/Gradlink/internal/database"
	"github.com/amantech05/Gradlink/internal/logger"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/amantech05/Gradlink/internal/repository"
	"github.com/amantech05/Gradlink/internal/router"
	"github.com/amantech05/Gradlink/internal/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载 .env（可选）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	repo, err := openRepository(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}

	fundLogic := logic.NewFundLogic(repo)
	monitorLogic := logic.NewMonitorLogic(repo, cfg.Fund.RecentWindow(), cfg.Fund.TopDonorLimit)

	if cfg.Fund.SeedDemo {
		seeded, err := fundLogic.SeedDemoData(context.Background())
		if err != nil {
			logger.Fatal("Failed to seed demo data: %v", err)
		}
		if seeded {
			logger.Info("Seeded demo fund requests")
		}
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Setup(fundLogic, monitorLogic)

	tasks, err := scheduler.NewManager(fundLogic, cfg)
	if err != nil {
		logger.Fatal("Failed to create task manager: %v", err)
	}
	if err := tasks.Start(); err != nil {
		logger.Fatal("Failed to start task manager: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}
	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	tasks.Stop()
	logger.Info("Server stopped")
}

func openRepository(cfg config.DatabaseConfig) (repository.Repository, error) {
	if cfg.Driver == "memory" {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return repository.NewMemoryRepository(), nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to postgres %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	return repository.NewGormRepository(db), nil
}
