package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/Heart-Quake/ahref-consolidation/internal/config"
	"github.com/Heart-Quake/ahref-consolidation/internal/handler"
	"github.com/Heart-Quake/ahref-consolidation/internal/service"
	"github.com/Heart-Quake/ahref-consolidation/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "config/dev.yaml", "Configuration file path")
		debug      = flag.Bool("debug", false, "Enable debug mode")
	)
	flag.Parse()

	if err := run(*configPath, *debug); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(configPath string, debug bool) error {
	cfg, err := config.NewManager().Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logConfig := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	if debug {
		logConfig.Level = "debug"
	}
	appLog := logger.New(logConfig)
	logger.SetLogger(appLog)

	app := fiber.New(fiber.Config{
		AppName:   "ahref-consolidation",
		BodyLimit: cfg.Server.BodyLimitMB * 1024 * 1024,
	})

	svc := service.NewAnalyzerService(cfg)
	handler.NewController(svc, cfg).RegisterRoutes(app)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		appLog.Info("Shutdown signal received")
		if err := app.Shutdown(); err != nil {
			appLog.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLog.WithField("addr", addr).Info("Server starting")
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	appLog.Info("Server stopped")
	return nil
}
