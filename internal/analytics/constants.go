package analytics

// constants.go - пороги и эвристики детекторов
//
// Назначение:
// Все магические числа движка собраны в одном месте для прозрачной
// настройки без изменения поведения. Пороги подобраны эмпирически
// и намеренно различаются между advanced движком и legacy детектором
// (два кода пути сохранены как отдельные именованные варианты).
//
// Гейты (минимальный размер выборки) варьируются от 3 до 10 сделок:
// грубая бакетизация требует меньше примеров, тонкая - больше.
// Ниже гейта детектор не выдает ничего - инсайт никогда не
// фабрикуется из недостаточных данных.

// MaxInsights - максимальное количество инсайтов в финальном ответе
const MaxInsights = 20

// ============ Часовые паттерны (advanced) ============

const (
	// minTradesPerHour - гейт для участия часа в ранжировании
	minTradesPerHour = 3
	// minTradesDangerHour - гейт для danger zone (жестче, одиночный час)
	minTradesDangerHour = 5
	// dangerHourLossThreshold - минимальный суммарный убыток часа в $
	dangerHourLossThreshold = 100.0
	// goldenHoursConfidenceCap - потолок уверенности golden window
	goldenHoursConfidenceCap = 0.9
	// goldenHoursTradesNorm - нормировка уверенности: count / 20
	goldenHoursTradesNorm = 20.0
	// dangerHourConfidence - фиксированная уверенность danger zone
	dangerHourConfidence = 0.85
	// minConsecutiveHours - минимум последовательных часов для окна
	minConsecutiveHours = 2
)

// ============ Торговые сессии (advanced) ============

// tradingSession - именованное окно часов суток.
// Сессии пересекаются - это не взаимоисключающее разбиение.
type tradingSession struct {
	Name  string
	Hours []int
}

// advancedSessions - шесть сессий advanced движка.
// Часы условно UTC-ориентированы с US/EST конвенциями; таблица
// фиксирована и не параметризуется таймзоной брокера.
var advancedSessions = []tradingSession{
	{"Asian Session", hourRange(21, 24, 0, 8)},
	{"European Session", hourRange(7, 16)},
	{"US Session", hourRange(13, 22)},
	{"Asian-European Overlap", hourRange(7, 8)},
	{"European-US Overlap", hourRange(13, 16)},
	{"Market Dead Zone", hourRange(16, 21)},
}

const (
	// minTradesPerSession - гейт сессии
	minTradesPerSession = 5
	// sessionExcellenceProfit - порог суммарной прибыли для excellence
	sessionExcellenceProfit = 200.0
	// sessionExcellenceWinRate - порог win-rate для excellence
	sessionExcellenceWinRate = 0.65
	// sessionWarningLoss - порог суммарного убытка для warning
	sessionWarningLoss = -200.0
	// sessionWarningWinRate - порог win-rate для warning
	sessionWarningWinRate = 0.35
	// sessionExcellenceConfidenceCap / sessionWarningConfidenceCap - потолки
	sessionExcellenceConfidenceCap = 0.85
	sessionWarningConfidenceCap    = 0.8
	// sessionTradesNorm - нормировка уверенности: count / 15
	sessionTradesNorm = 15.0
)

// ============ Дни недели / сезонность ============

const (
	// fridayAfternoonHour - "после 3 PM" для пятничного риска
	fridayAfternoonHour = 15
	// minFridayLateTrades - гейт пятничного детектора
	minFridayLateTrades = 3
	// fridayLossThreshold / fridayWinRateThreshold - условия предупреждения
	fridayLossThreshold    = -100.0
	fridayWinRateThreshold = 0.4
	// fridayConfidence - фиксированная уверенность
	fridayConfidence = 0.8

	// minTradesPerMonth - гейт месяца для сезонности
	minTradesPerMonth = 5
	// minQualifyingMonths - минимум месяцев с данными
	minQualifyingMonths = 3
	// seasonalityRatio - best > ratio × |worst|
	seasonalityRatio = 1.5
	// seasonalityConfidence - фиксированная уверенность
	seasonalityConfidence = 0.7

	// monthEdgeFirstDay / monthEdgeLastDay - границы первой/последней недели месяца
	monthEdgeFirstDay = 7
	monthEdgeLastDay  = 25
	// monthCycleDiffThreshold - минимальная разница средних в $
	monthCycleDiffThreshold = 20.0
	// monthCycleConfidence - фиксированная уверенность
	monthCycleConfidence = 0.7
)

// ============ Управление позицией ============

// durationBucket - бакет длительности удержания позиции
type durationBucket struct {
	Label    string
	MaxHours float64 // верхняя граница (не включительно)
}

// durationBuckets - бакеты {<1h, 1-4h, 4-24h, 1-7d, >7d}
var durationBuckets = []durationBucket{
	{"Scalp (<1h)", 1},
	{"Short (1-4h)", 4},
	{"Day (4-24h)", 24},
	{"Swing (1-7d)", 168},
	{"Position (>7d)", 0}, // 0 = без верхней границы
}

const (
	// durationConfidence - фиксированная уверенность
	durationConfidence = 0.8

	// lotQuartileBuckets - количество квартильных бакетов
	lotQuartileBuckets = 4
	// lotSizingConfidence - фиксированная уверенность
	lotSizingConfidence = 0.85

	// stopLossProtectionRatio - |worst no-SL| > ratio × |worst SL|
	stopLossProtectionRatio = 2.0
	// stopLossConfidence - фиксированная уверенность
	stopLossConfidence = 0.9

	// takeProfitHitTolerance - close_price в пределах tolerance от TP = TP hit
	takeProfitHitTolerance = 0.001
	// takeProfitManualRatio - manual avg > ratio × tp-hit avg
	takeProfitManualRatio = 1.2
	// takeProfitConfidence - фиксированная уверенность
	takeProfitConfidence = 0.75

	// entryRiskFraction - "хороший вход" = ход цены > fraction × риск
	entryRiskFraction = 0.5
	// minGoodEntries - гейт детектора точности входа
	minGoodEntries = 5
	// goodEntryRateThreshold - порог доли хороших входов
	goodEntryRateThreshold = 0.7
	// entryTimingConfidence - фиксированная уверенность
	entryTimingConfidence = 0.85
)

// ============ Поведенческие паттерны ============

const (
	// lossStreakThreshold - флаг при серии убытков >= порога
	lossStreakThreshold = 5
	// lossStreakConfidence - фиксированная уверенность
	lossStreakConfidence = 0.9

	// winStreakThreshold - флаг при серии прибылей >= порога
	winStreakThreshold = 8
	// winStreakConfidence - фиксированная уверенность
	winStreakConfidence = 0.9

	// revengeLossThreshold - "большой убыток" перед revenge сделкой
	revengeLossThreshold = -200.0
	// revengeVolumeRatio - рост объема следующей сделки
	revengeVolumeRatio = 1.5
	// minRevengeOccurrences - гейт детектора
	minRevengeOccurrences = 3
	// revengeConfidence - фиксированная уверенность
	revengeConfidence = 0.85

	// impulsiveReentryMinutes - "быстрая" сделка после убытка
	impulsiveReentryMinutes = 15
	// minImpulsiveOccurrences - гейт детектора
	minImpulsiveOccurrences = 3
	// impulsiveConfidence - фиксированная уверенность
	impulsiveConfidence = 0.8

	// lowActivityMaxTrades / highActivityMinTrades - границы дневной активности
	lowActivityMaxTrades  = 3
	highActivityMinTrades = 10
	// overtradingProfitGap - превышение среднего дневного профита в $
	overtradingProfitGap = 50.0
	// overtradingConfidence - фиксированная уверенность
	overtradingConfidence = 0.8

	// lossAversionRatio - avg loss > ratio × avg win
	lossAversionRatio = 2.0
	// lossAversionConfidence - фиксированная уверенность
	lossAversionConfidence = 0.9
)

// ============ Рыночные условия ============

// newsHours - часы типичных новостных релизов (EST конвенция, фиксировано)
var newsHours = []int{8, 9, 14, 15, 16}

const (
	// newsVolatilityRatio - news stddev > ratio × baseline stddev
	newsVolatilityRatio = 1.5
	// newsConfidence - фиксированная уверенность
	newsConfidence = 0.8

	// weekendFridayHour - пятница после этого часа = экспозиция на гэп
	weekendFridayHour = 20
	// weekendSundayHour - воскресенье до этого часа = экспозиция на гэп
	weekendSundayHour = 4
	// weekendVolatilityRatio - weekend stddev > ratio × baseline stddev
	weekendVolatilityRatio = 1.3
	// weekendConfidence - фиксированная уверенность
	weekendConfidence = 0.85
)

// ============ Портфельные паттерны ============

const (
	// minSymbolsForCorrelation - минимум различных символов
	minSymbolsForCorrelation = 3
	// correlationThreshold - |corr| выше порога = высокая корреляция
	correlationThreshold = 0.7
	// maxCorrelationInsights - максимум пар в ответе
	maxCorrelationInsights = 3
	// correlationConfidence - фиксированная уверенность
	correlationConfidence = 0.8

	// concentrationShare - доля одного символа в позитивной прибыли
	concentrationShare = 0.8
	// concentrationConfidence - фиксированная уверенность
	concentrationConfidence = 0.85

	// minEfficiencyDays - гейт детектора утилизации капитала
	minEfficiencyDays = 10
	// efficiencyTopQuantile / efficiencyBottomQuantile - границы квинтилей
	efficiencyTopQuantile    = 0.8
	efficiencyBottomQuantile = 0.2
	// minEfficiencyGroupDays - минимум дней в каждом квинтиле
	minEfficiencyGroupDays = 3
	// efficiencyConfidence - фиксированная уверенность
	efficiencyConfidence = 0.8

	// minCompoundingDays - минимум дней истории для compounding анализа
	minCompoundingDays = 60
	// compoundingGrowthRatio - вторая половина > ratio × первой
	compoundingGrowthRatio = 1.5
	// compoundingConfidence - фиксированная уверенность
	compoundingConfidence = 0.8

	// minWeeklyBuckets - минимум недель для циклического анализа
	minWeeklyBuckets = 8
	// alternationRatioThreshold - доля смен знака между неделями
	alternationRatioThreshold = 0.7
	// cyclicalConfidence - фиксированная уверенность
	cyclicalConfidence = 0.75
)

// ============ Legacy детектор (basic path) ============
//
// Пороги намеренно расходятся с advanced движком: legacy путь
// сохраняет поведение старой версии (гейт часа 5 вместо 3 и т.д.).

// basicSessions - четыре сессии legacy детектора (UTC часы)
var basicSessions = []tradingSession{
	{"Asian", hourRange(0, 8)},
	{"European", hourRange(7, 16)},
	{"US", hourRange(13, 22)},
	{"Overlap_EU_US", hourRange(13, 16)},
}

const (
	// basicMinTradesPerHour - гейт часа в legacy пути
	basicMinTradesPerHour = 5
	// basicWorstHourLoss - минимальный убыток для флага худшего часа
	basicWorstHourLoss = -50.0
	// basicBestHourConfidenceCap / basicWorstHourConfidenceCap - потолки
	basicBestHourConfidenceCap  = 0.95
	basicWorstHourConfidenceCap = 0.90
	// basicHourTradesNorm - нормировка: count / 20
	basicHourTradesNorm = 20.0

	// basicMinTradesPerDay - гейт дня недели
	basicMinTradesPerDay = 3
	// basicBestDayConfidenceCap - потолок лучшего дня
	basicBestDayConfidenceCap = 0.85
	// basicDayTradesNorm - нормировка: count / 10
	basicDayTradesNorm = 10.0
	// basicFridayWinRate - порог win-rate пятницы
	basicFridayWinRate = 0.4
	// basicFridayConfidence - фиксированная уверенность
	basicFridayConfidence = 0.75

	// basicMinTradesPerSession - гейт сессии
	basicMinTradesPerSession = 5
	// basicSessionProfit / basicSessionWinRate - условия "хорошей" сессии
	basicSessionProfit  = 100.0
	basicSessionWinRate = 0.6
	// basicSessionConfidenceCap - потолок уверенности
	basicSessionConfidenceCap = 0.80
	// basicSessionTradesNorm - нормировка: count / 15
	basicSessionTradesNorm = 15.0

	// basicMinTradesBestPair - гейт лучшей пары
	basicMinTradesBestPair = 5
	// basicBestPairConfidenceCap - потолок лучшей пары
	basicBestPairConfidenceCap = 0.90
	// basicPairTradesNorm - нормировка: count / 20
	basicPairTradesNorm = 20.0

	// basicMinTradesWorstPair - гейт худшей пары
	basicMinTradesWorstPair = 3
	// basicWorstPairLoss - минимальный убыток пары
	basicWorstPairLoss = -50.0
	// basicWorstPairConfidenceCap - потолок худшей пары
	basicWorstPairConfidenceCap = 0.85
	// basicWorstPairTradesNorm - нормировка: count / 15
	basicWorstPairTradesNorm = 15.0

	// basicMinTradesPairRisk - гейт риск-анализа пары
	basicMinTradesPairRisk = 5
	// basicVolatilityRatio - порог отношения stddev/|mean|
	basicVolatilityRatio = 2.0
	// basicPairRiskConfidence - фиксированная уверенность
	basicPairRiskConfidence = 0.75
)

// hourRange строит список часов из пар [from, to) границ.
//
// Пример: hourRange(21, 24, 0, 8) = [21 22 23 0 1 2 3 4 5 6 7]
func hourRange(bounds ...int) []int {
	var hours []int
	for i := 0; i+1 < len(bounds); i += 2 {
		for h := bounds[i]; h < bounds[i+1]; h++ {
			hours = append(hours, h)
		}
	}
	return hours
}
