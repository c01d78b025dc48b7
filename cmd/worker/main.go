package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"inmobiliaria_backend/internal/scheduler"
	"inmobiliaria_backend/internal/webhook"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting webhook worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := webhook.NewSender(cfg.GetWebhookTimeout(), log)

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize webhook worker", "error", err)
		panic("failed to initialize webhook worker: " + err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("webhook worker stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("webhook worker stopped")
}
