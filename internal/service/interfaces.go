package service

import (
	"tradeinsight/internal/models"
	"tradeinsight/internal/repository"
)

// TradeRepositoryInterface определяет интерфейс репозитория сделок
type TradeRepositoryInterface interface {
	GetByAccountID(accountID string) ([]*models.Trade, error)
	CountByAccountID(accountID string) (int, error)
	DistinctSymbols(accountID string) ([]string, error)
}

// Проверяем, что реальный репозиторий реализует интерфейс
var _ TradeRepositoryInterface = (*repository.TradeRepository)(nil)

// ============ Интерфейсы сервисов для Dependency Injection ============

// InsightServiceInterface определяет интерфейс сервиса инсайтов
type InsightServiceInterface interface {
	DiscoverInsights(accountID string) ([]models.Insight, error)
	DetectBasicInsights(accountID string) ([]models.Insight, error)
	GetAccountMetrics(accountID string) (*models.AccountMetrics, error)
	GetTimeAnalysis(accountID string) (*models.TimeAnalysis, error)
	GetPairAnalysis(accountID string) ([]models.SymbolStat, error)
	GetHourlyHeatmap(accountID string) (*models.Heatmap, error)
	GetDailyHeatmap(accountID string) (*models.Heatmap, error)
}

// Проверяем, что реальный сервис реализует интерфейс
var _ InsightServiceInterface = (*InsightService)(nil)
