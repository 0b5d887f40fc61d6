package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradeinsight/internal/api/handlers"
	"tradeinsight/internal/api/middleware"
	"tradeinsight/internal/service"
	"tradeinsight/internal/websocket"
)

// Dependencies содержит все зависимости для API handlers
type Dependencies struct {
	InsightService service.InsightServiceInterface
	Hub            *websocket.Hub

	// APIKeyHash - bcrypt-хеш ключа для защищенных endpoints (пусто = без auth)
	APIKeyHash string

	// RateLimitPerSecond - лимит запросов в секунду (0 = без лимита)
	RateLimitPerSecond int
}

// SetupRoutes настраивает все HTTP маршруты приложения
//
// Назначение:
// Центральное место для определения всех API endpoints.
// Регистрирует handlers для каждого маршрута.
// Применяет middleware к группам маршрутов.
// Организует версионирование API (v1).
//
// Структура маршрутов:
//
// /api/v1/accounts/{id}/
//
//	├── GET /insights - полный анализ всеми детекторами (топ-20)
//	├── GET /insights/basic - упрощенный legacy-анализ
//	├── GET /metrics - сводные метрики счета
//	└── /analysis/
//	    ├── GET /time - профили по часам и дням недели
//	    ├── GET /pairs - статистика по инструментам
//	    ├── GET /heatmap/hourly - теплокарта по часам
//	    └── GET /heatmap/daily - теплокарта по дням
//
// /ws/stream - WebSocket для real-time обновлений
// /metrics - Prometheus метрики
// /health - проверка живости
//
// Middleware применяется в следующем порядке:
// 1. Recovery (для всех маршрутов)
// 2. Logging (для всех маршрутов)
// 3. CORS (для всех маршрутов)
// 4. RateLimit + APIKeyAuth (только для /api/v1)
func SetupRoutes(deps *Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Глобальные middleware (применяются ко всем маршрутам)
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.CORS)

	// Создание handlers с внедрением зависимостей
	var insightHandler *handlers.InsightHandler
	var analysisHandler *handlers.AnalysisHandler
	if deps != nil && deps.InsightService != nil {
		insightHandler = handlers.NewInsightHandler(deps.InsightService)
		analysisHandler = handlers.NewAnalysisHandler(deps.InsightService)
	}

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()
	if deps != nil {
		api.Use(middleware.RateLimit(deps.RateLimitPerSecond))
		api.Use(middleware.APIKeyAuth(deps.APIKeyHash))
	}

	// Insight routes
	if insightHandler != nil {
		api.HandleFunc("/accounts/{id}/insights", insightHandler.GetInsights).Methods("GET")
		api.HandleFunc("/accounts/{id}/insights/basic", insightHandler.GetBasicInsights).Methods("GET")
		api.HandleFunc("/accounts/{id}/metrics", insightHandler.GetMetrics).Methods("GET")
	}

	// Analysis routes
	if analysisHandler != nil {
		api.HandleFunc("/accounts/{id}/analysis/time", analysisHandler.GetTimeAnalysis).Methods("GET")
		api.HandleFunc("/accounts/{id}/analysis/pairs", analysisHandler.GetPairAnalysis).Methods("GET")
		api.HandleFunc("/accounts/{id}/analysis/heatmap/hourly", analysisHandler.GetHourlyHeatmap).Methods("GET")
		api.HandleFunc("/accounts/{id}/analysis/heatmap/daily", analysisHandler.GetDailyHeatmap).Methods("GET")
	}

	// WebSocket route
	if deps != nil && deps.Hub != nil {
		hub := deps.Hub
		router.HandleFunc("/ws/stream", func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(hub, w, r)
		})
	}

	// Prometheus метрики
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
