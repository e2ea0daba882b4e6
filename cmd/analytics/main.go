package main

import (
	"context"
	"flag"
	"os"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/app"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := wrap.WithAction(context.Background(), "startup")
	log := logger.InitLogger("ride-analytics", logger.LevelInfo)

	if _, err := os.Stat(*configPath); err != nil && *configPath == "config.yaml" {
		// the default path is optional; env and defaults still apply
		*configPath = ""
	}

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(2)
	}

	log = logger.InitLogger(cfg.App.ServiceName, cfg.App.LogLevel)

	// Printing configuration
	config.PrintConfig(ctx, cfg, log)

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(wrap.ErrorCtx(ctx, err), "failed to run application", err)
		os.Exit(1)
	}
}
