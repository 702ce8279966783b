package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bilancio/internal/amqp"
	"bilancio/internal/config"
	"bilancio/internal/log"
)

// audit-worker consumes entity-change events published by the bilancio
// server and writes one structured log line per mutation. It is the
// simplest possible downstream consumer and doubles as a live audit
// trail during development.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logCfg := log.DefaultConfig()
	logCfg.Component = log.ComponentWorker
	logger := log.New(logCfg)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting audit worker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	handler := func(msg *amqp.EntityChangeMessage) error {
		logger.Info("Entity change",
			log.FieldEntity, msg.Entity,
			log.FieldEntityID, msg.ID,
			log.FieldOperation, msg.Op,
			"timestamp", msg.Timestamp,
		)
		return nil
	}

	err := amqp.ConsumeWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, handler)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Audit worker stopped gracefully")
}
