package models

// Insight представляет одно ранжированное наблюдение о торговом поведении.
//
// Создается детектором, потребляется ранжированием, отдается клиенту как есть.
// Не хранится в базе и не держит ссылок на исходные сделки.
//
// Поля:
// - Type: стабильный тег паттерна (например "golden_hours", "revenge_trading")
// - Value: величина находки (доллары, коэффициент, счетчик - зависит от детектора)
// - Confidence: уверенность детектора в диапазоне [0, 1]
type Insight struct {
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Value          float64 `json:"value"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation"`
}

// Теги инсайтов (advanced engine)
const (
	InsightGoldenHours          = "golden_hours"
	InsightDangerHour           = "danger_hour"
	InsightSessionExcellence    = "session_excellence"
	InsightSessionWarning       = "session_warning"
	InsightWeeklyPattern        = "weekly_pattern"
	InsightSeasonalPattern      = "seasonal_pattern"
	InsightMonthlyCycle         = "monthly_cycle"
	InsightDurationOptimization = "duration_optimization"
	InsightPositionSizing       = "position_sizing"
	InsightRiskManagement       = "risk_management"
	InsightExitStrategy         = "exit_strategy"
	InsightRiskWarning          = "risk_warning"
	InsightPerformanceStrength  = "performance_strength"
	InsightBehavioralWarning    = "behavioral_warning"
	InsightEmotionalTrading     = "emotional_trading"
	InsightOvertradingWarning   = "overtrading_warning"
	InsightMarketTiming         = "market_timing"
	InsightGapRisk              = "gap_risk"
	InsightDiversification      = "diversification_warning"
	InsightConcentrationRisk    = "concentration_risk"
	InsightCapitalEfficiency    = "capital_efficiency"
	InsightGrowthAcceleration   = "growth_acceleration"
	InsightCyclicalPattern      = "cyclical_pattern"
	InsightBehavioralPattern    = "behavioral_pattern"
	InsightSkillRecognition     = "skill_recognition"
)

// Теги инсайтов (basic pattern detector - legacy путь)
const (
	InsightTimePattern     = "time_pattern"
	InsightSessionPattern  = "session_pattern"
	InsightPairPerformance = "pair_performance"
	InsightRiskAnalysis    = "risk_analysis"
)

// AccountMetrics представляет базовые метрики торгового счета
type AccountMetrics struct {
	TotalTrades  int      `json:"total_trades"`
	ClosedTrades int      `json:"closed_trades"`
	TotalProfit  float64  `json:"total_profit"`
	AvgProfit    float64  `json:"avg_profit"`
	WinRate      float64  `json:"win_rate"` // в процентах
	ProfitFactor float64  `json:"profit_factor"`
	MaxDrawdown  Drawdown `json:"max_drawdown"`
	LargestWin   float64  `json:"largest_win"`
	LargestLoss  float64  `json:"largest_loss"`
}

// Drawdown представляет максимальную просадку
type Drawdown struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// HourStat представляет агрегированную статистику за один час суток (0-23)
type HourStat struct {
	Hour       int     `json:"hour"`
	Profit     float64 `json:"profit"`
	TradeCount int     `json:"trade_count"`
	WinRate    float64 `json:"win_rate"`   // в процентах
	AvgProfit  float64 `json:"avg_profit"`
}

// DayStat представляет агрегированную статистику за один день недели
type DayStat struct {
	Day        string  `json:"day"`       // Mon..Sun
	DayIndex   int     `json:"day_index"` // 0=Monday
	Profit     float64 `json:"profit"`
	TradeCount int     `json:"trade_count"`
	WinRate    float64 `json:"win_rate"` // в процентах
	AvgProfit  float64 `json:"avg_profit"`
}

// SymbolStat представляет статистику по торговому символу
type SymbolStat struct {
	Symbol     string  `json:"symbol"`
	Profit     float64 `json:"profit"`
	TradeCount int     `json:"trade_count"`
	WinRate    float64 `json:"win_rate"` // в процентах
	AvgProfit  float64 `json:"avg_profit"`
	RiskScore  float64 `json:"risk_score"` // stddev / |mean|, 0 при вырожденных данных
}

// TimeAnalysis объединяет почасовой и дневной профили счета
type TimeAnalysis struct {
	Hourly []HourStat `json:"hourly"`
	Daily  []DayStat  `json:"daily"`
}

// Heatmap представляет данные теплокарты для frontend
type Heatmap struct {
	Data      interface{} `json:"data"`
	MaxProfit float64     `json:"max_profit"`
	MinProfit float64     `json:"min_profit"`
}
