package websocket

import (
	"time"

	"tradeinsight/internal/models"
)

// MessageType определяет тип WebSocket сообщения
type MessageType string

// Типы WebSocket сообщений
const (
	// MessageTypeInsightsUpdate - результаты полного анализа счета
	// Отправляется после каждого прогона всех детекторов
	MessageTypeInsightsUpdate MessageType = "insightsUpdate"

	// MessageTypeMetricsUpdate - обновление сводных метрик счета
	// Отправляется при пересчете метрик (после загрузки новых сделок)
	MessageTypeMetricsUpdate MessageType = "metricsUpdate"
)

// BaseMessage - базовая структура для всех WebSocket сообщений
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// InsightsUpdateMessage - сообщение с результатами анализа счета
//
// Содержит ранжированный список инсайтов после полного прогона
// детекторов. Count дублирует длину списка для клиентов,
// которым нужен только счетчик без разбора массива.
type InsightsUpdateMessage struct {
	BaseMessage
	AccountID string           `json:"account_id"`
	Count     int              `json:"count"`
	Insights  []models.Insight `json:"insights"`
}

// MetricsUpdateMessage - сообщение с обновленными метриками счета
type MetricsUpdateMessage struct {
	BaseMessage
	AccountID string                 `json:"account_id"`
	Metrics   *models.AccountMetrics `json:"metrics"`
}

// NewInsightsUpdateMessage создает сообщение insightsUpdate.
// Пустой список нормализуется в [], чтобы клиент не получил null.
func NewInsightsUpdateMessage(accountID string, insights []models.Insight) *InsightsUpdateMessage {
	if insights == nil {
		insights = []models.Insight{}
	}
	return &InsightsUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeInsightsUpdate,
			Timestamp: time.Now(),
		},
		AccountID: accountID,
		Count:     len(insights),
		Insights:  insights,
	}
}

// NewMetricsUpdateMessage создает сообщение metricsUpdate
func NewMetricsUpdateMessage(accountID string, metrics *models.AccountMetrics) *MetricsUpdateMessage {
	return &MetricsUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeMetricsUpdate,
			Timestamp: time.Now(),
		},
		AccountID: accountID,
		Metrics:   metrics,
	}
}
