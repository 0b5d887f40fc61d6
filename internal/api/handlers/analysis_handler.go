package handlers

import (
	"net/http"

	"tradeinsight/internal/models"
	"tradeinsight/internal/service"
)

// AnalysisHandler обрабатывает HTTP запросы агрегированной аналитики.
//
// Endpoints:
// - GET /api/v1/accounts/{id}/analysis/time - профили по часам и дням недели
// - GET /api/v1/accounts/{id}/analysis/pairs - статистика по инструментам
// - GET /api/v1/accounts/{id}/analysis/heatmap/hourly - теплокарта по часам
// - GET /api/v1/accounts/{id}/analysis/heatmap/daily - теплокарта по дням
type AnalysisHandler struct {
	insightService service.InsightServiceInterface
}

// NewAnalysisHandler создает новый AnalysisHandler с внедрением зависимостей.
func NewAnalysisHandler(insightService service.InsightServiceInterface) *AnalysisHandler {
	return &AnalysisHandler{
		insightService: insightService,
	}
}

// GetTimeAnalysis возвращает почасовой и дневной профили счета.
//
// GET /api/v1/accounts/{id}/analysis/time
//
// Response 200 OK:
//
//	{
//	  "hourly": [{"hour": 0, "profit": 0, "trade_count": 0, "win_rate": 0, "avg_profit": 0}, ...],
//	  "daily": [{"day": "Mon", "day_index": 0, "profit": 120.5, ...}, ...]
//	}
//
// hourly всегда содержит 24 записи, daily всегда 7 (понедельник первый).
func (h *AnalysisHandler) GetTimeAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.insightService == nil {
		writeError(w, http.StatusInternalServerError, "insight service not initialized", "")
		return
	}

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	analysis, err := h.insightService.GetTimeAnalysis(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute time analysis", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// GetPairAnalysis возвращает статистику по инструментам счета.
//
// GET /api/v1/accounts/{id}/analysis/pairs
//
// Response 200 OK:
//
//	{
//	  "pairs": [
//	    {"symbol": "EURUSD", "profit": 450.25, "trade_count": 80, "win_rate": 61.2,
//	     "avg_profit": 5.63, "risk_score": 1.4}
//	  ]
//	}
//
// Инструменты отсортированы по убыванию прибыли.
func (h *AnalysisHandler) GetPairAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.insightService == nil {
		writeError(w, http.StatusInternalServerError, "insight service not initialized", "")
		return
	}

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	pairs, err := h.insightService.GetPairAnalysis(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute pair analysis", err.Error())
		return
	}

	if pairs == nil {
		pairs = []models.SymbolStat{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pairs": pairs,
	})
}

// GetHourlyHeatmap возвращает теплокарту прибыли по часам суток.
//
// GET /api/v1/accounts/{id}/analysis/heatmap/hourly
func (h *AnalysisHandler) GetHourlyHeatmap(w http.ResponseWriter, r *http.Request) {
	if h.insightService == nil {
		writeError(w, http.StatusInternalServerError, "insight service not initialized", "")
		return
	}

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	heatmap, err := h.insightService.GetHourlyHeatmap(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute hourly heatmap", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, heatmap)
}

// GetDailyHeatmap возвращает теплокарту прибыли по дням недели.
//
// GET /api/v1/accounts/{id}/analysis/heatmap/daily
func (h *AnalysisHandler) GetDailyHeatmap(w http.ResponseWriter, r *http.Request) {
	if h.insightService == nil {
		writeError(w, http.StatusInternalServerError, "insight service not initialized", "")
		return
	}

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	heatmap, err := h.insightService.GetDailyHeatmap(accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute daily heatmap", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, heatmap)
}
