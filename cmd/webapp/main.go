package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"siem-lab/config"
	"siem-lab/logging"
	"siem-lab/siem"
	"siem-lab/webapp"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log, "vulnerable-webapp")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Warn("this service is intentionally vulnerable; run it only inside the lab network")

	reporter := siem.NewHTTPReporter(cfg.SIEM.CollectorURL, "vulnerable-webapp", cfg.SIEM.Timeout, logger)

	attempts, err := webapp.NewAttemptTracker(cfg.Webapp.AttemptCapacity)
	if err != nil {
		logger.Fatal("failed to build attempt tracker", zap.Error(err))
	}

	server := webapp.NewServer(cfg.Webapp.Users, attempts, reporter, logger)

	router := gin.Default()
	router.LoadHTMLGlob(cfg.Webapp.TemplateGlob)
	server.Register(router)

	logger.Info("credential service starting",
		zap.String("addr", cfg.Webapp.ListenAddr),
		zap.String("collector", cfg.SIEM.CollectorURL))
	if err := router.Run(cfg.Webapp.ListenAddr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
