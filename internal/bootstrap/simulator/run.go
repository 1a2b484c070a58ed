package simulator

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"transaction-anomaly-system/internal/config"
	"transaction-anomaly-system/internal/runner"
)

// StartSimulator запускает симуляцию транзакций: батч из count тиков
// или бесконечный daemon-режим. SIGINT/SIGTERM останавливают цикл
// между тиками, не обрывая проведение текущего перевода.
func StartSimulator(count int, daemon bool) {
	cfg := config.Load()

	deps, err := InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	interval := cfg.Simulation.BatchInterval
	if daemon {
		interval = cfg.Simulation.DaemonInterval
	}

	r := runner.NewRunner(deps.Generator, deps.Processor, interval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if daemon {
		err = r.RunDaemon(ctx)
	} else {
		err = r.RunBatch(ctx, count)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Simulation failed: %v", err)
	}

	log.Println("Simulator exited")
}
