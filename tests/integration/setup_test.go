// Package integration contains integration tests for the trade insight service.
//
// These tests verify the correct interaction between components:
// - API integration tests: full HTTP request cycle
// - WebSocket tests: connection, broadcast messaging
// - Database tests: trade repository against a real PostgreSQL
//
// Tests skip automatically when the test database is unavailable.
package integration

import (
	"database/sql"
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tradeinsight/internal/analytics"
	"tradeinsight/internal/api"
	"tradeinsight/internal/models"
	"tradeinsight/internal/repository"
	"tradeinsight/internal/service"
	"tradeinsight/internal/websocket"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

// TestConfig contains configuration for integration tests
type TestConfig struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// TestServer encapsulates all components needed for integration testing
type TestServer struct {
	DB             *sql.DB
	Router         *mux.Router
	Server         *httptest.Server
	Hub            *websocket.Hub
	TradeRepo      *repository.TradeRepository
	InsightService *service.InsightService
	Cleanup        func()
}

// getTestConfig returns configuration from environment variables or defaults
func getTestConfig() TestConfig {
	return TestConfig{
		DBDriver:   getEnv("TEST_DB_DRIVER", "postgres"),
		DBHost:     getEnv("TEST_DB_HOST", "localhost"),
		DBPort:     getEnv("TEST_DB_PORT", "5432"),
		DBName:     getEnv("TEST_DB_NAME", "tradeinsight_test"),
		DBUser:     getEnv("TEST_DB_USER", "postgres"),
		DBPassword: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBSSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SetupTestDB creates a test database connection
func SetupTestDB(t *testing.T) (*sql.DB, func()) {
	config := getTestConfig()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSSLMode,
	)

	db, err := sql.Open(config.DBDriver, connStr)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil, func() {}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Skipf("Skipping integration test: cannot ping database: %v", err)
		return nil, func() {}
	}

	// Set connection pool settings
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	return db, cleanup
}

// SetupTestServer creates a complete test server with all components
func SetupTestServer(t *testing.T) *TestServer {
	db, dbCleanup := SetupTestDB(t)
	if db == nil {
		return nil
	}

	// Initialize tables
	if err := initTestTables(db); err != nil {
		t.Skipf("Skipping integration test: cannot initialize tables: %v", err)
		return nil
	}

	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create repository and service stack
	tradeRepo := repository.NewTradeRepository(db)
	engine := analytics.NewEngine(true)
	insightService := service.NewInsightService(tradeRepo, engine)
	insightService.SetWebSocketHub(hub)

	// Setup router
	deps := &api.Dependencies{
		InsightService: insightService,
		Hub:            hub,
	}
	router := api.SetupRoutes(deps)

	// Create test server
	server := httptest.NewServer(router)

	cleanup := func() {
		server.Close()
		hub.Stop()
		cleanupTestTables(db)
		dbCleanup()
	}

	return &TestServer{
		DB:             db,
		Router:         router,
		Server:         server,
		Hub:            hub,
		TradeRepo:      tradeRepo,
		InsightService: insightService,
		Cleanup:        cleanup,
	}
}

// initTestTables creates or truncates tables for testing
func initTestTables(db *sql.DB) error {
	table := `CREATE TABLE IF NOT EXISTS trades (
		id SERIAL PRIMARY KEY,
		account_id VARCHAR(64) NOT NULL,
		ticket BIGINT,
		position BIGINT,
		magic_number BIGINT,
		symbol VARCHAR(20) NOT NULL,
		type VARCHAR(10) NOT NULL DEFAULT 'buy',
		volume DECIMAL(12, 4) NOT NULL DEFAULT 0,
		open_price DECIMAL(20, 8) NOT NULL DEFAULT 0,
		close_price DECIMAL(20, 8),
		stop_loss DECIMAL(20, 8),
		take_profit DECIMAL(20, 8),
		profit DECIMAL(20, 2) NOT NULL DEFAULT 0,
		commission DECIMAL(20, 2) NOT NULL DEFAULT 0,
		swap DECIMAL(20, 2) NOT NULL DEFAULT 0,
		open_time TIMESTAMP NOT NULL,
		close_time TIMESTAMP,
		comment TEXT NOT NULL DEFAULT ''
	)`

	if _, err := db.Exec(table); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	index := `CREATE INDEX IF NOT EXISTS idx_trades_account_open_time
		ON trades (account_id, open_time)`
	if _, err := db.Exec(index); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// cleanupTestTables truncates all test tables
func cleanupTestTables(db *sql.DB) {
	db.Exec("TRUNCATE TABLE trades CASCADE")
}

// TruncateTable truncates a specific table for testing
func TruncateTable(db *sql.DB, tableName string) error {
	_, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", tableName))
	return err
}

// seedTrade inserts a closed trade for the given account
func seedTrade(t *testing.T, repo *repository.TradeRepository, accountID, symbol string, openTime time.Time, profit float64) *models.Trade {
	t.Helper()

	closeTime := openTime.Add(time.Hour)
	closePrice := 1.1020
	trade := &models.Trade{
		AccountID:  accountID,
		Symbol:     symbol,
		Type:       models.TradeTypeBuy,
		Volume:     0.1,
		OpenPrice:  1.1000,
		ClosePrice: &closePrice,
		Profit:     profit,
		OpenTime:   openTime,
		CloseTime:  &closeTime,
	}
	if err := repo.Create(trade); err != nil {
		t.Fatalf("failed to seed trade: %v", err)
	}
	return trade
}
