package analytics

import (
	"fmt"
	"time"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// detectors_behavior.go - поведенческие детекторы: серии убытков
// и прибылей, revenge trading, импульсивные входы, overtrading,
// loss aversion. Все работают по хронологически отсортированной
// последовательности сделок.

// detectConsecutiveLosses флагует длинные серии убыточных сделок.
//
// Считаются все серии подряд идущих сделок с net profit < 0
// (включая незавершенную хвостовую серию). Флаг при максимуме >= 5,
// в описании приводится средняя длина серии.
func detectConsecutiveLosses(table *TradeTable) []models.Insight {
	sorted := table.SortedByOpenTime()

	streaks := streakLengths(sorted, func(r TradeRow) bool { return r.NetProfit < 0 })
	if len(streaks) == 0 {
		return nil
	}

	maxStreak := maxInt(streaks)
	if maxStreak < lossStreakThreshold {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightRiskWarning,
		Title: fmt.Sprintf("Consecutive Loss Risk: %d Trades", maxStreak),
		Description: fmt.Sprintf(
			"Maximum consecutive losses reached %d trades. Average losing streak is %.1f trades.",
			maxStreak, meanInt(streaks)),
		Value:          float64(maxStreak),
		Confidence:     lossStreakConfidence,
		Recommendation: "Implement position size reduction after 3 consecutive losses to prevent large drawdowns.",
	}}
}

// detectWinningStreaks флагует выдающиеся серии прибыльных сделок.
//
// Зеркально detectConsecutiveLosses, порог 8 сделок подряд.
func detectWinningStreaks(table *TradeTable) []models.Insight {
	sorted := table.SortedByOpenTime()

	streaks := streakLengths(sorted, func(r TradeRow) bool { return r.NetProfit > 0 })
	if len(streaks) == 0 {
		return nil
	}

	maxStreak := maxInt(streaks)
	if maxStreak < winStreakThreshold {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightPerformanceStrength,
		Title: fmt.Sprintf("Exceptional Winning Streak: %d Trades", maxStreak),
		Description: fmt.Sprintf(
			"Maximum winning streak reached %d consecutive profitable trades (average: %.1f).",
			maxStreak, meanInt(streaks)),
		Value:          float64(maxStreak),
		Confidence:     winStreakConfidence,
		Recommendation: "Strong momentum trading ability detected. Consider trend-following strategies to capitalize on this strength.",
	}}
}

// detectRevengeTrading ищет рост объема после крупного убытка.
//
// Кандидат - сделка, перед которой был убыток хуже -$200 и после
// которой объем следующей сделки вырос более чем в 1.5 раза.
// Гейт 3 случая; value - средний результат кандидатов.
func detectRevengeTrading(table *TradeTable) []models.Insight {
	sorted := table.SortedByOpenTime()
	if len(sorted) < 3 {
		return nil
	}

	var revenge []TradeRow
	for i := 1; i+1 < len(sorted); i++ {
		if sorted[i-1].NetProfit >= revengeLossThreshold {
			continue
		}
		if sorted[i+1].Volume > sorted[i].Volume*revengeVolumeRatio {
			revenge = append(revenge, sorted[i])
		}
	}
	if len(revenge) < minRevengeOccurrences {
		return nil
	}

	successRate := utils.WinRate(netProfits(revenge))
	avgResult := utils.Mean(netProfits(revenge))

	return []models.Insight{{
		Type:  models.InsightBehavioralWarning,
		Title: "Revenge Trading Detected",
		Description: fmt.Sprintf(
			"After large losses, position sizes increased by 50%%+ in %d cases with %.1f%% success rate.",
			len(revenge), successRate*100),
		Value:          avgResult,
		Confidence:     revengeConfidence,
		Recommendation: "Implement cooling-off period after large losses. Maintain consistent position sizing regardless of previous results.",
	}}
}

// detectImpulsiveTrading ищет быстрые повторные входы после убытка.
//
// Кандидат - убыточная сделка, следующая за которой открыта менее
// чем через 15 минут. Гейт 3 случая; success rate считается по
// результатам этих следующих сделок.
func detectImpulsiveTrading(table *TradeTable) []models.Insight {
	sorted := table.SortedByOpenTime()
	if len(sorted) < 2 {
		return nil
	}

	window := time.Duration(impulsiveReentryMinutes) * time.Minute

	quick := 0
	var followUps []TradeRow
	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].NetProfit >= 0 {
			continue
		}
		if sorted[i+1].OpenTime.Sub(sorted[i].OpenTime) < window {
			quick++
			followUps = append(followUps, sorted[i+1])
		}
	}
	if quick < minImpulsiveOccurrences {
		return nil
	}

	successRate := utils.WinRate(netProfits(followUps))

	return []models.Insight{{
		Type:  models.InsightEmotionalTrading,
		Title: "Impulsive Trading After Losses",
		Description: fmt.Sprintf(
			"%d trades were opened within 15 minutes of a loss, with %.1f%% success rate.",
			quick, successRate*100),
		Value:          float64(quick),
		Confidence:     impulsiveConfidence,
		Recommendation: "Implement a cooling-off period of at least 30 minutes after any loss to avoid emotional decisions.",
	}}
}

// detectOvertrading сравнивает дни низкой и высокой активности.
//
// Дни с <= 3 сделками против дней с >= 10; флаг, если дневная
// прибыль спокойных дней превышает прибыль активных более чем на $50.
func detectOvertrading(table *TradeTable) []models.Insight {
	daily := groupByDate(table.Rows())

	var lowProfits, highProfits []float64
	for _, rows := range daily {
		total := utils.Sum(netProfits(rows))
		if len(rows) <= lowActivityMaxTrades {
			lowProfits = append(lowProfits, total)
		} else if len(rows) >= highActivityMinTrades {
			highProfits = append(highProfits, total)
		}
	}
	if len(lowProfits) == 0 || len(highProfits) == 0 {
		return nil
	}

	lowAvg := utils.Mean(lowProfits)
	highAvg := utils.Mean(highProfits)
	if lowAvg <= highAvg+overtradingProfitGap {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightOvertradingWarning,
		Title: "Quality Over Quantity Pattern",
		Description: fmt.Sprintf(
			"Low-frequency days (≤3 trades) average $%.2f vs high-frequency days (≥10 trades) $%.2f.",
			lowAvg, highAvg),
		Value:          lowAvg - highAvg,
		Confidence:     overtradingConfidence,
		Recommendation: "Focus on trade quality over quantity. Fewer, well-analyzed trades show better performance.",
	}}
}

// detectLossAversion сравнивает средний убыток со средней прибылью.
//
// Классическая асимметрия loss aversion: средний убыток более чем
// вдвое превышает среднюю прибыль.
func detectLossAversion(table *TradeTable) []models.Insight {
	var wins, losses []float64
	for _, r := range table.Rows() {
		if r.NetProfit > 0 {
			wins = append(wins, r.NetProfit)
		} else if r.NetProfit < 0 {
			losses = append(losses, r.NetProfit)
		}
	}
	if len(wins) == 0 || len(losses) == 0 {
		return nil
	}

	avgWin := utils.Mean(wins)
	avgLoss := utils.Abs(utils.Mean(losses))
	if avgLoss <= avgWin*lossAversionRatio {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightBehavioralPattern,
		Title: "Loss Aversion Pattern Detected",
		Description: fmt.Sprintf(
			"Average loss ($%.2f) is %.1fx larger than average win ($%.2f).",
			avgLoss, avgLoss/avgWin, avgWin),
		Value:          avgLoss - avgWin,
		Confidence:     lossAversionConfidence,
		Recommendation: "Cut losses earlier or let winners run longer to improve risk-reward ratio.",
	}}
}
