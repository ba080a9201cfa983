package main

import (
	"flag"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"siem-lab/config"
	"siem-lab/database"
	"siem-lab/logging"
	"siem-lab/siem"
	"siem-lab/webhook"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log, "webhook-service")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	store, err := database.Open(cfg.Webhook.DBPath)
	if err != nil {
		logger.Fatal("failed to open audit database", zap.Error(err))
	}
	defer store.Close()

	go cleanupWorker(store, cfg.Webhook.AuditRetention, logger)

	reporter := siem.NewHTTPReporter(cfg.SIEM.CollectorURL, "webhook-service", cfg.SIEM.Timeout, logger)
	executor := webhook.NewScriptExecutor(cfg.Webhook.ScriptPath, cfg.Webhook.CommandTimeout, logger)
	server := webhook.NewServer(executor, reporter, store, cfg.Webhook.Secret, logger)

	router := gin.New()
	router.Use(gin.Logger(), server.Recovery())
	server.Register(router)

	logger.Info("command relay starting",
		zap.String("addr", cfg.Webhook.ListenAddr),
		zap.String("script", cfg.Webhook.ScriptPath),
		zap.String("collector", cfg.SIEM.CollectorURL))
	if err := router.Run(cfg.Webhook.ListenAddr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func cleanupWorker(store *database.Store, retention time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := store.CleanupOldOperations(retention); err != nil {
			logger.Error("audit cleanup failed", zap.Error(err))
		}
	}
}
