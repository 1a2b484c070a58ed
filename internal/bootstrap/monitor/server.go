package monitor

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transaction-anomaly-system/internal/api/rest"
	"transaction-anomaly-system/internal/config"
)

// StartMonitorService запускает сервис мониторинга: REST API по леджеру
// и consumer потока алертов из Kafka
func StartMonitorService() {
	cfg := config.Load()

	deps, err := InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	// Настройка REST API
	handlers := rest.NewHandlers(deps.StorageRepo, deps.RedisClient)
	router := rest.SetupRouter(handlers)

	// Запуск HTTP сервера
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MonitorPort),
		Handler: router,
	}

	go func() {
		log.Printf("Anomaly Monitor Service starting on port %d", cfg.Server.MonitorPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Запуск consumer в отдельной горутине
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()

	if deps.KafkaConsumer != nil {
		go func() {
			log.Println("Starting Kafka alert consumer...")
			if err := deps.KafkaConsumer.Start(consumerCtx); err != nil {
				log.Printf("Kafka consumer stopped: %v", err)
			}
		}()
	} else {
		log.Println("Warning: Kafka consumer not started (Kafka not available)")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancelConsumer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
