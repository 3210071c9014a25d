package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tanka-roy/c-hx-V01/internal/adapter/llm"
	"github.com/tanka-roy/c-hx-V01/internal/config"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/policy"
	"github.com/tanka-roy/c-hx-V01/internal/registry"
	"github.com/tanka-roy/c-hx-V01/internal/repository"
	"github.com/tanka-roy/c-hx-V01/internal/service"
	handler "github.com/tanka-roy/c-hx-V01/internal/transport/http"
	"github.com/tanka-roy/c-hx-V01/internal/transport/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting chat server...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM timeout: %s, history window: %d", cfg.LLMTimeout, cfg.HistoryWindow)

	// Initialize model registry
	reg, err := loadRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize model registry: %v", err)
	}
	log.Printf("Models: %d registered, default %s", len(reg.List()), reg.Default().Key)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	m := metrics.New()

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg, reg, m)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, llmClient, reg, cfg, policyEngine, m)

	server := handler.NewServer(svc, ws.NewServer(cfg, svc), m)
	server.Debug = cfg.LogLevel == "debug"

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Chat API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chat server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Chat server stopped")
}

func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.ModelsFile != "" {
		log.Printf("Loading models from %s", cfg.ModelsFile)
		return registry.LoadFile(cfg.ModelsFile, cfg.DefaultModel)
	}
	return registry.New(registry.DefaultEntries(), cfg.DefaultModel)
}
