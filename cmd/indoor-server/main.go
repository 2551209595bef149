package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/elif5446/S390-404-Name-not-Found-sub000/internal/config"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/internal/logging"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/building"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/indoor"
	"github.com/elif5446/S390-404-Name-not-Found-sub000/pkg/server/navapi"
	"golang.org/x/exp/slog"
)

func main() {
	configFile := flag.String("config", "configs/config.yaml", "config file")
	address := flag.String("address", "", "listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Read(*configFile)
	if err != nil {
		slog.Error("failed to read config file", "error", err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Server.Address = *address
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stdout, level)
	slog.SetDefault(logger)

	catalogue, err := building.LoadDirectory(cfg.Buildings.Directory)
	if err != nil {
		logger.Error("failed to load buildings", "directory", cfg.Buildings.Directory, "error", err)
		os.Exit(1)
	}
	logger.Info("buildings found", "directory", cfg.Buildings.Directory, "count", len(catalogue))

	maps := indoor.NewMapService(indoor.WithLogger(logger))
	service := navapi.NewNavigationApiService(maps, catalogue)
	if cfg.Buildings.Default != "" {
		if _, err := service.ActivateBuilding(context.Background(), cfg.Buildings.Default); err != nil {
			logger.Error("failed to load default building", "building", cfg.Buildings.Default, "error", err)
			os.Exit(1)
		}
	}

	controller := navapi.NewNavigationApiController(service)
	router := navapi.NewRouter(logger, controller)

	logger.Info("server started", "address", cfg.Server.Address)
	if err := http.ListenAndServe(cfg.Server.Address, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
