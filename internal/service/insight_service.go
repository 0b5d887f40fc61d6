package service

import (
	"log"
	"time"

	"tradeinsight/internal/analytics"
	"tradeinsight/internal/models"
)

// InsightBroadcaster - интерфейс для отправки обновлений инсайтов через WebSocket
type InsightBroadcaster interface {
	BroadcastInsightsUpdate(accountID string, insights []models.Insight)
}

// InsightService предоставляет бизнес-логику анализа торговой истории.
//
// Функции:
// - DiscoverInsights: полный анализ всеми детекторами, топ-20 по релевантности
// - DetectBasicInsights: упрощенный legacy-анализ (время, пары, риск)
// - GetAccountMetrics: сводные метрики счета
// - GetTimeAnalysis / GetPairAnalysis: профили по времени и инструментам
// - GetHourlyHeatmap / GetDailyHeatmap: данные теплокарт для frontend
//
// WebSocket интеграция:
// - После полного анализа отправляет insightsUpdate через WebSocket
type InsightService struct {
	tradeRepo TradeRepositoryInterface
	engine    *analytics.Engine
	wsHub     InsightBroadcaster
}

// NewInsightService создает новый экземпляр InsightService
func NewInsightService(tradeRepo TradeRepositoryInterface, engine *analytics.Engine) *InsightService {
	return &InsightService{
		tradeRepo: tradeRepo,
		engine:    engine,
	}
}

// SetWebSocketHub устанавливает WebSocket hub для broadcast инсайтов.
//
// Вызывается после инициализации Hub в main.go:
//
//	insightService := service.NewInsightService(tradeRepo, engine)
//	insightService.SetWebSocketHub(wsHub)
func (s *InsightService) SetWebSocketHub(hub InsightBroadcaster) {
	s.wsHub = hub
}

// DiscoverInsights выполняет полный анализ истории счета.
//
// Загружает все сделки счета, прогоняет их через все зарегистрированные
// детекторы и возвращает топ находок, отсортированных по релевантности
// (confidence * |value|). Пустая история дает пустой список, не ошибку.
//
// После анализа отправляет insightsUpdate подписчикам WebSocket.
func (s *InsightService) DiscoverInsights(accountID string) ([]models.Insight, error) {
	trades, err := s.tradeRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}

	insights := s.engine.DiscoverInsights(trades)

	if s.wsHub != nil {
		s.wsHub.BroadcastInsightsUpdate(accountID, insights)
	}

	log.Printf("Анализ счета %s: %d сделок, %d инсайтов", accountID, len(trades), len(insights))
	return insights, nil
}

// DetectBasicInsights выполняет упрощенный анализ (legacy путь).
//
// Запускает только базовые детекторы времени и инструментов.
// Ранжирование отличается от полного анализа: сортировка по кортежу
// (confidence, |value|) и без усечения списка.
func (s *InsightService) DetectBasicInsights(accountID string) ([]models.Insight, error) {
	started := time.Now()

	trades, err := s.tradeRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}

	table := analytics.BuildTradeTable(trades)

	insights := analytics.DetectBasicTimePatterns(table)
	insights = append(insights, analytics.DetectBasicPairPatterns(table)...)
	ranked := analytics.RankBasicInsights(insights)

	analytics.RecordAnalysis("basic", started)
	return ranked, nil
}

// GetAccountMetrics возвращает сводные метрики счета
func (s *InsightService) GetAccountMetrics(accountID string) (*models.AccountMetrics, error) {
	table, err := s.loadTable(accountID)
	if err != nil {
		return nil, err
	}

	metrics := analytics.ComputeAccountMetrics(table)
	return &metrics, nil
}

// GetTimeAnalysis возвращает почасовой и дневной профили счета
func (s *InsightService) GetTimeAnalysis(accountID string) (*models.TimeAnalysis, error) {
	table, err := s.loadTable(accountID)
	if err != nil {
		return nil, err
	}

	return &models.TimeAnalysis{
		Hourly: analytics.HourlyProfile(table),
		Daily:  analytics.DailyProfile(table),
	}, nil
}

// GetPairAnalysis возвращает статистику по инструментам, отсортированную по прибыли
func (s *InsightService) GetPairAnalysis(accountID string) ([]models.SymbolStat, error) {
	table, err := s.loadTable(accountID)
	if err != nil {
		return nil, err
	}

	return analytics.PairPerformance(table), nil
}

// GetHourlyHeatmap возвращает теплокарту прибыли по часам суток
func (s *InsightService) GetHourlyHeatmap(accountID string) (*models.Heatmap, error) {
	table, err := s.loadTable(accountID)
	if err != nil {
		return nil, err
	}

	heatmap := analytics.HourlyHeatmap(table)
	return &heatmap, nil
}

// GetDailyHeatmap возвращает теплокарту прибыли по дням недели
func (s *InsightService) GetDailyHeatmap(accountID string) (*models.Heatmap, error) {
	table, err := s.loadTable(accountID)
	if err != nil {
		return nil, err
	}

	heatmap := analytics.DailyHeatmap(table)
	return &heatmap, nil
}

// loadTable загружает сделки счета и строит аналитическую таблицу
func (s *InsightService) loadTable(accountID string) (*analytics.TradeTable, error) {
	trades, err := s.tradeRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, err
	}

	return analytics.BuildTradeTable(trades), nil
}
