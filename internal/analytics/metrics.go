package analytics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Prometheus метрики аналитического движка
// ============================================================
//
// Использование:
// - Grafana дашборды для визуализации времени анализа
// - Alertmanager для уведомлений о паниках детекторов
// - Подбор таймаутов для тяжелых аккаунтов

// ============ Метрики латентности ============

// AnalysisDuration - полное время анализа аккаунта
// Buckets рассчитаны на истории от сотен до сотен тысяч сделок
var AnalysisDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tradeinsight",
		Subsystem: "analytics",
		Name:      "analysis_duration_ms",
		Help:      "Full account analysis duration in milliseconds",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	},
	[]string{"path"}, // advanced, basic
)

// DetectorDuration - время работы отдельного детектора
var DetectorDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tradeinsight",
		Subsystem: "analytics",
		Name:      "detector_duration_ms",
		Help:      "Single detector run duration in milliseconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250},
	},
	[]string{"detector"},
)

// ============ Счётчики событий ============

// InsightsGenerated - количество инсайтов по тегам
var InsightsGenerated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradeinsight",
		Subsystem: "analytics",
		Name:      "insights_generated_total",
		Help:      "Total number of generated insights",
	},
	[]string{"type"},
)

// DetectorPanics - подавленные паники детекторов
var DetectorPanics = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradeinsight",
		Subsystem: "analytics",
		Name:      "detector_panics_total",
		Help:      "Number of recovered detector panics",
	},
	[]string{"detector"},
)

// TradesAnalyzed - количество сделок, прошедших через построение таблицы
var TradesAnalyzed = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "tradeinsight",
		Subsystem: "analytics",
		Name:      "trades_analyzed_total",
		Help:      "Total number of trades fed into analysis",
	},
)

// ============ Вспомогательные функции ============

// RecordAnalysis записывает длительность анализа
func RecordAnalysis(path string, started time.Time) {
	AnalysisDuration.WithLabelValues(path).Observe(
		float64(time.Since(started).Microseconds()) / 1000)
}

// RecordDetectorRun записывает длительность работы детектора
func RecordDetectorRun(detector string, started time.Time) {
	DetectorDuration.WithLabelValues(detector).Observe(
		float64(time.Since(started).Microseconds()) / 1000)
}

// RecordInsight записывает сгенерированный инсайт
func RecordInsight(insightType string) {
	InsightsGenerated.WithLabelValues(insightType).Inc()
}

// RecordDetectorPanic записывает подавленную панику
func RecordDetectorPanic(detector string) {
	DetectorPanics.WithLabelValues(detector).Inc()
}
