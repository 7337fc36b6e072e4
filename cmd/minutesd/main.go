package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"minutes/internal/config"
	"minutes/internal/daemon"
	"minutes/internal/logging"
	"minutes/internal/store"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open store", logging.Error(err))
		return
	}
	defer st.Close()

	client := buildLLMClient(cfg, logger)
	proc := buildProcessor(cfg, st, client, logger)

	d, err := daemon.New(cfg, st, proc, client, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}

	if err := d.Run(ctx); err != nil {
		logger.Error("daemon exited", logging.Error(err))
		return
	}
	logger.Info("minutesd shutting down")
}
