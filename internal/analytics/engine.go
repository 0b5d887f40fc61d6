package analytics

import (
	"log"
	"sort"
	"sync"
	"time"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// engine.go - движок обнаружения инсайтов
//
// Назначение:
// Прогоняет таблицу сделок через реестр детекторов, собирает
// результаты, санитизирует и ранжирует их.
//
// Гарантии:
//   - Паника одного детектора не роняет анализ: она логируется,
//     детектор пропускается, остальные отрабатывают.
//   - Порядок результатов детерминирован независимо от режима
//     исполнения: результаты складываются по позиции детектора
//     в реестре, затем стабильная сортировка.
//   - Все Value и Confidence конечны, Confidence в [0, 1].

// detectorFunc - чистая функция детектора над таблицей сделок
type detectorFunc func(*TradeTable) []models.Insight

// registeredDetector - именованная запись реестра
type registeredDetector struct {
	Name string
	Fn   detectorFunc
}

// detectorRegistry - полный реестр advanced детекторов.
// Порядок фиксирован: он определяет порядок равных по важности
// инсайтов в финальном ответе.
var detectorRegistry = []registeredDetector{
	// Временные паттерны
	{"golden_hours", detectGoldenHours},
	{"trading_sessions", detectTradingSessions},
	{"friday_afternoon", detectFridayAfternoon},
	{"month_seasonality", detectMonthSeasonality},

	// Портфель: корреляции
	{"pair_correlations", detectPairCorrelations},

	// Управление позицией
	{"lot_sizing", detectLotSizing},
	{"position_duration", detectPositionDuration},
	{"stop_loss_effectiveness", detectStopLossEffectiveness},
	{"take_profit_patterns", detectTakeProfitPattern},

	// Управление риском
	{"consecutive_losses", detectConsecutiveLosses},
	{"overtrading", detectOvertrading},

	// Рыночные условия
	{"news_hours", detectNewsHours},
	{"weekend_gap", detectWeekendGap},
	{"monthly_cycle", detectMonthlyCycle},

	// Поведение
	{"revenge_trading", detectRevengeTrading},
	{"loss_aversion", detectLossAversion},
	{"entry_timing", detectEntryTiming},
	{"impulsive_trading", detectImpulsiveTrading},

	// Портфель: эффективность
	{"concentration", detectConcentration},
	{"capital_utilization", detectCapitalUtilization},
	{"compounding", detectCompounding},

	// Серии и циклы
	{"winning_streaks", detectWinningStreaks},
	{"weekly_cycles", detectWeeklyCycles},
}

// Engine запускает детекторы и ранжирует инсайты.
//
// Поля:
//   - Parallel: запускать детекторы в отдельных горутинах.
//     Последовательный режим полезен в тестах и при отладке.
//   - MaxInsights: размер финального топа (0 = MaxInsights по умолчанию).
type Engine struct {
	Parallel    bool
	MaxInsights int

	registry []registeredDetector
}

// NewEngine создает движок с полным реестром детекторов
func NewEngine(parallel bool) *Engine {
	return &Engine{
		Parallel:    parallel,
		MaxInsights: MaxInsights,
		registry:    detectorRegistry,
	}
}

// DiscoverInsights строит таблицу из сделок и возвращает топ
// инсайтов, отсортированный по важности confidence × |value|.
//
// Пустой вход дает пустой результат без запуска детекторов.
// Вызов идемпотентен: одинаковый вход дает одинаковый выход.
func (e *Engine) DiscoverInsights(trades []*models.Trade) []models.Insight {
	started := time.Now()
	defer RecordAnalysis("advanced", started)

	table := BuildTradeTable(trades)
	if table.IsEmpty() {
		return []models.Insight{}
	}
	TradesAnalyzed.Add(float64(table.Len()))

	results := e.runDetectors(table)

	var insights []models.Insight
	for _, batch := range results {
		for _, ins := range batch {
			RecordInsight(ins.Type)
			insights = append(insights, sanitizeInsight(ins))
		}
	}

	rankInsights(insights)

	limit := e.MaxInsights
	if limit <= 0 {
		limit = MaxInsights
	}
	if len(insights) > limit {
		insights = insights[:limit]
	}
	if insights == nil {
		insights = []models.Insight{}
	}
	return insights
}

// runDetectors исполняет реестр, складывая результаты по позиции
// детектора, чтобы порядок не зависел от планировщика горутин.
func (e *Engine) runDetectors(table *TradeTable) [][]models.Insight {
	results := make([][]models.Insight, len(e.registry))

	if !e.Parallel {
		for i, d := range e.registry {
			results[i] = runDetectorSafe(d, table)
		}
		return results
	}

	var wg sync.WaitGroup
	for i, d := range e.registry {
		wg.Add(1)
		go func(i int, d registeredDetector) {
			defer wg.Done()
			results[i] = runDetectorSafe(d, table)
		}(i, d)
	}
	wg.Wait()

	return results
}

// runDetectorSafe изолирует панику детектора: лог и пустой результат
func runDetectorSafe(d registeredDetector, table *TradeTable) (insights []models.Insight) {
	started := time.Now()
	defer func() {
		RecordDetectorRun(d.Name, started)
		if r := recover(); r != nil {
			log.Printf("Детектор %s: паника подавлена: %v", d.Name, r)
			RecordDetectorPanic(d.Name)
			insights = nil
		}
	}()
	return d.Fn(table)
}

// sanitizeInsight приводит инсайт к инвариантам ответа:
// конечный Value (иначе 0), Confidence в [0, 1].
func sanitizeInsight(ins models.Insight) models.Insight {
	if !utils.IsFinite(ins.Value) {
		ins.Value = 0
	}
	if !utils.IsFinite(ins.Confidence) {
		ins.Confidence = 0
	}
	ins.Confidence = utils.Clamp(ins.Confidence, 0, 1)
	return ins
}

// rankInsights сортирует по важности confidence × |value| по убыванию.
// Сортировка стабильная: равные по важности сохраняют порядок реестра.
func rankInsights(insights []models.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Confidence*utils.Abs(insights[i].Value) >
			insights[j].Confidence*utils.Abs(insights[j].Value)
	})
}
