package handlers

import (
	"net/http"

	"tradeinsight/internal/models"
	"tradeinsight/internal/service"
)

// InsightHandler обрабатывает HTTP запросы анализа торговой истории.
//
// Endpoints:
// - GET /api/v1/accounts/{id}/insights - полный анализ всеми детекторами (топ-20)
// - GET /api/v1/accounts/{id}/insights/basic - упрощенный legacy-анализ
// - GET /api/v1/accounts/{id}/metrics - сводные метрики счета
//
// Полный анализ прогоняет историю через все зарегистрированные детекторы
// и возвращает находки, отсортированные по релевантности.
// Базовый анализ использует только детекторы времени и инструментов
// и сохраняет историческое ранжирование (кортеж, без усечения).
type InsightHandler struct {
	insightService service.InsightServiceInterface
}

// NewInsightHandler создает новый InsightHandler с внедрением зависимостей.
func NewInsightHandler(insightService service.InsightServiceInterface) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
	}
}

// GetInsights возвращает результаты полного анализа счета.
//
// GET /api/v1/accounts/{id}/insights
//
// Response 200 OK:
//
//	{
//	  "account_id": "acc-1",
//	  "count": 12,
//	  "insights": [
//	    {
//	      "type": "golden_hours",
//	      "title": "Golden Trading Window: 9:00-11:00",
//	      "description": "You are most profitable trading between 9:00-11:00 ($440.00 total)",
//	      "value": 440.0,
//	      "confidence": 0.4,
//	      "recommendation": "Focus your trading during these peak performance hours"
//	    }
//	  ]
//	}
//
// Пустая история дает пустой массив insights, не ошибку.
//
// Response 500 Internal Server Error:
//
//	{"error": "failed to discover insights", "details": "..."}
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	if h.insightService == nil {
		writeError(w, http.StatusInternalServerError, "insight service not initialized", "")
		return
	}

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	insights, err := h.insightService.DiscoverInsights(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to discover insights", err.Error())
		return
	}

	// Убеждаемся, что пустой список возвращается как [], а не null
	if insights == nil {
		insights = []models.Insight{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"count":      len(insights),
		"insights":   insights,
	})
}

// GetBasicInsights возвращает результаты упрощенного анализа.
//
// GET /api/v1/accounts/{id}/insights/basic
//
// Формат ответа идентичен GetInsights, но список не усекается
// и отсортирован по кортежу (confidence, |value|).
func (h *InsightHandler) GetBasicInsights(w http.ResponseWriter, r *http.Request) {
	if h.insightService == nil {
		writeError(w, http.StatusInternalServerError, "insight service not initialized", "")
		return
	}

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	insights, err := h.insightService.DetectBasicInsights(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to detect basic insights", err.Error())
		return
	}

	if insights == nil {
		insights = []models.Insight{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"count":      len(insights),
		"insights":   insights,
	})
}

// GetMetrics возвращает сводные метрики счета.
//
// GET /api/v1/accounts/{id}/metrics
//
// Response 200 OK:
//
//	{
//	  "total_trades": 150,
//	  "closed_trades": 148,
//	  "total_profit": 1250.50,
//	  "avg_profit": 8.34,
//	  "win_rate": 58.5,
//	  "profit_factor": 1.8,
//	  "max_drawdown": {"amount": 320.00, "percentage": 12.5},
//	  "largest_win": 210.00,
//	  "largest_loss": -95.00
//	}
//
// Счет без сделок дает нулевые метрики, не ошибку.
func (h *InsightHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if h.insightService == nil {
		writeError(w, http.StatusInternalServerError, "insight service not initialized", "")
		return
	}

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	metrics, err := h.insightService.GetAccountMetrics(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute metrics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
