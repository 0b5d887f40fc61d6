package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradeinsight/internal/analytics"
	"tradeinsight/internal/api"
	"tradeinsight/internal/config"
	"tradeinsight/internal/repository"
	"tradeinsight/internal/service"
	"tradeinsight/internal/websocket"
	"tradeinsight/pkg/retry"

	_ "github.com/lib/pq"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация базы данных
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.DSNWithoutPassword())

	// Инициализация репозиториев
	tradeRepo := repository.NewTradeRepository(db)

	// Аналитический движок
	engine := analytics.NewEngine(cfg.Engine.Parallel)
	engine.MaxInsights = cfg.Engine.MaxInsights

	// Инициализация сервисов
	insightService := service.NewInsightService(tradeRepo, engine)

	// WebSocket hub для real-time обновлений
	hub := websocket.NewHub()
	go hub.Run()
	insightService.SetWebSocketHub(hub)

	// Настройка зависимостей для API
	deps := &api.Dependencies{
		InsightService:     insightService,
		Hub:                hub,
		APIKeyHash:         cfg.Security.APIKeyHash,
		RateLimitPerSecond: cfg.Security.RateLimitPerSecond,
	}

	// Настройка HTTP роутера
	router := api.SetupRoutes(deps)

	// HTTP сервер
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запуск сервера в отдельной горутине
	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if cfg.Server.UseHTTPS {
			if err := server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		} else {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// initDatabase создает подключение к базе данных.
// Ping выполняется с экспоненциальным backoff: при старте в docker-compose
// база может подняться на несколько секунд позже сервера.
func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pingCfg := retry.DefaultConfig()
	pingCfg.MaxRetries = cfg.Database.MaxRetries
	pingCfg.InitialDelay = cfg.Database.RetryBackoff
	pingCfg.MaxDelay = 10 * time.Second
	pingCfg.RetryIf = retry.RetryIfNotContext
	pingCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Printf("Database ping attempt %d failed: %v (retrying in %v)", attempt, err, delay)
	}

	err = retry.Do(ctx, func() error {
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pingCancel()
		return db.PingContext(pingCtx)
	}, pingCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
