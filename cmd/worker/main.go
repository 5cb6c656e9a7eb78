package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"copygate-be/internal/config"
	"copygate-be/internal/pkg/logger"
	"copygate-be/pkg/events"
	"copygate-be/pkg/nats"
)

// Audit worker: tails every gate event off the bus and records it in the
// audit log file, independent of the REST process.
func main() {
	cfg := config.Load()

	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	sub, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", "copygate-audit-worker", func(ctx context.Context, event events.Event) error {
		auditLogger.Info("audit_worker", "Event received", map[string]interface{}{
			"event_type": event.EventType(),
			"payload":    event.Payload(),
		})
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	log.Println("✅ Audit worker running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Audit worker shutting down")
}
