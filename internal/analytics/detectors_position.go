package analytics

import (
	"fmt"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// detectors_position.go - детекторы управления позицией:
// длительность удержания, размер лота, стоп-лоссы, тейк-профиты,
// точность входа.

// detectPositionDuration находит оптимальный период удержания.
//
// Закрытые сделки раскладываются по бакетам длительности
// (durationBuckets); побеждает бакет с лучшей средней прибылью.
// Инсайт выдается всегда, когда есть хотя бы одна закрытая сделка.
func detectPositionDuration(table *TradeTable) []models.Insight {
	buckets := make([][]TradeRow, len(durationBuckets))
	for _, row := range table.Rows() {
		if row.DurationHours == nil {
			continue
		}
		buckets[durationBucketIndex(*row.DurationHours)] = append(
			buckets[durationBucketIndex(*row.DurationHours)], row)
	}

	best := -1
	var bestStats bucketStats
	for i, rows := range buckets {
		if len(rows) == 0 {
			continue
		}
		s := summarize(rows)
		if best == -1 || s.AvgProfit > bestStats.AvgProfit {
			best = i
			bestStats = s
		}
	}
	if best == -1 {
		return nil
	}

	label := durationBuckets[best].Label
	return []models.Insight{{
		Type:  models.InsightDurationOptimization,
		Title: fmt.Sprintf("Optimal Holding Period: %s", label),
		Description: fmt.Sprintf(
			"%s trades show best average profit of $%.2f with %.1f%% win rate.",
			label, bestStats.AvgProfit, bestStats.WinRate*100),
		Value:      bestStats.AvgProfit,
		Confidence: durationConfidence,
		Recommendation: fmt.Sprintf(
			"Focus on %s trades as they align with your trading strength and market timing.", label),
	}}
}

// durationBucketIndex возвращает индекс бакета длительности.
// MaxHours == 0 трактуется как бакет без верхней границы.
func durationBucketIndex(hours float64) int {
	for i, b := range durationBuckets {
		if b.MaxHours > 0 && hours <= b.MaxHours {
			return i
		}
	}
	return len(durationBuckets) - 1
}

// detectLotSizing находит размер лота с лучшей риск-коррекцией.
//
// Дерево разбиения:
//  1. Квартильное (Small/Medium/Large/XLarge), если границы
//     q25 < q50 < q75 различимы.
//  2. Иначе при >= 4 различных объемах - равноширинные 4 бакета
//     с теми же метками.
//  3. Иначе при >= 2 различных объемах - N равноширинных бакетов
//     с метками Size_1..Size_N.
//  4. Иначе анализ пропускается.
//
// Для каждого бакета считается отношение средней прибыли к ее
// stddev (Sharpe-подобная метрика); побеждает максимум.
func detectLotSizing(table *TradeTable) []models.Insight {
	rows := table.Rows()

	volumes := make([]float64, len(rows))
	for i, r := range rows {
		volumes[i] = r.Volume
	}
	if utils.StdDev(volumes) == 0 {
		return nil
	}

	labels, assign := lotBuckets(volumes)
	if labels == nil {
		return nil
	}

	grouped := make([][]TradeRow, len(labels))
	for i, r := range rows {
		idx := assign(volumes[i])
		grouped[idx] = append(grouped[idx], r)
	}

	best := -1
	bestRatio := 0.0
	for i, group := range grouped {
		if len(group) == 0 {
			continue
		}
		ratio := utils.SharpeRatio(netProfits(group))
		if best == -1 || ratio > bestRatio {
			best = i
			bestRatio = ratio
		}
	}
	if best == -1 {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightPositionSizing,
		Title: fmt.Sprintf("Optimal Position Size: %s", labels[best]),
		Description: fmt.Sprintf(
			"%s lot sizes show best risk-adjusted returns (Sharpe ratio: %.2f).",
			labels[best], bestRatio),
		Value:      bestRatio,
		Confidence: lotSizingConfidence,
		Recommendation: fmt.Sprintf(
			"Focus on %s position sizes for optimal risk-adjusted performance.", labels[best]),
	}}
}

// lotBuckets строит разбиение объемов по дереву из detectLotSizing.
// Возвращает метки бакетов и функцию назначения; nil при
// недостаточной вариативности.
func lotBuckets(volumes []float64) ([]string, func(float64) int) {
	quartileLabels := []string{"Small", "Medium", "Large", "XLarge"}

	q25 := utils.Quantile(volumes, 0.25)
	q50 := utils.Quantile(volumes, 0.50)
	q75 := utils.Quantile(volumes, 0.75)
	if q25 < q50 && q50 < q75 {
		return quartileLabels, func(v float64) int {
			switch {
			case v <= q25:
				return 0
			case v <= q50:
				return 1
			case v <= q75:
				return 2
			default:
				return 3
			}
		}
	}

	distinct := utils.CountDistinct(volumes)
	if distinct < 2 {
		return nil, nil
	}

	bins := lotQuartileBuckets
	labels := quartileLabels
	if distinct < lotQuartileBuckets {
		bins = distinct
		labels = make([]string, bins)
		for i := range labels {
			labels[i] = fmt.Sprintf("Size_%d", i+1)
		}
	}

	min, max := volumes[0], volumes[0]
	for _, v := range volumes {
		min = utils.Min(min, v)
		max = utils.Max(max, v)
	}
	width := (max - min) / float64(bins)

	return labels, func(v float64) int {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		return idx
	}
}

// detectStopLossEffectiveness сравнивает худшие результаты сделок
// со стоп-лоссом и без него.
//
// Флаг, если |худший убыток без SL| больше чем в 2 раза превышает
// |худший убыток с SL|.
func detectStopLossEffectiveness(table *TradeTable) []models.Insight {
	withSL := table.Filter(func(r TradeRow) bool { return r.StopLoss != nil })
	withoutSL := table.Filter(func(r TradeRow) bool { return r.StopLoss == nil })
	if len(withSL) == 0 || len(withoutSL) == 0 {
		return nil
	}

	slMaxLoss := minProfit(withSL)
	noSLMaxLoss := minProfit(withoutSL)
	if utils.Abs(noSLMaxLoss) <= utils.Abs(slMaxLoss)*stopLossProtectionRatio {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightRiskManagement,
		Title: "Stop Loss Protection Effectiveness",
		Description: fmt.Sprintf(
			"Trades without stop loss had maximum loss of $%.2f vs $%.2f with stop loss.",
			utils.Abs(noSLMaxLoss), utils.Abs(slMaxLoss)),
		Value:          utils.Abs(noSLMaxLoss) - utils.Abs(slMaxLoss),
		Confidence:     stopLossConfidence,
		Recommendation: "Always use stop losses. They prevented significantly larger losses in your trading history.",
	}}
}

// minProfit возвращает минимальный net profit набора строк
func minProfit(rows []TradeRow) float64 {
	min := rows[0].NetProfit
	for _, r := range rows {
		if r.NetProfit < min {
			min = r.NetProfit
		}
	}
	return min
}

// detectTakeProfitPattern сравнивает TP-срабатывания с ручными выходами.
//
// Среди сделок с установленным TP и известной ценой закрытия:
// |close - tp| < tolerance считается срабатыванием TP,
// |close - tp| > tolerance - ручным закрытием. Флаг, если ручные
// выходы в среднем прибыльнее TP-срабатываний более чем в 1.2 раза.
func detectTakeProfitPattern(table *TradeTable) []models.Insight {
	withTP := table.Filter(func(r TradeRow) bool {
		return r.TakeProfit != nil && r.ClosePrice != nil
	})
	if len(withTP) == 0 {
		return nil
	}

	var tpHits, manual []TradeRow
	for _, r := range withTP {
		diff := utils.Abs(*r.ClosePrice - *r.TakeProfit)
		if diff < takeProfitHitTolerance {
			tpHits = append(tpHits, r)
		} else if diff > takeProfitHitTolerance {
			manual = append(manual, r)
		}
	}
	if len(tpHits) == 0 || len(manual) == 0 {
		return nil
	}

	tpHitAvg := utils.Mean(netProfits(tpHits))
	manualAvg := utils.Mean(netProfits(manual))
	if manualAvg <= tpHitAvg*takeProfitManualRatio {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightExitStrategy,
		Title: "Early Exit Opportunity",
		Description: fmt.Sprintf(
			"Manually closed trades averaged $%.2f vs $%.2f for TP hits.",
			manualAvg, tpHitAvg),
		Value:          manualAvg - tpHitAvg,
		Confidence:     takeProfitConfidence,
		Recommendation: "Consider trailing stops or partial profit taking instead of fixed take profits.",
	}}
}

// detectEntryTiming оценивает точность входа по сделкам со стоп-лоссом.
//
// "Хороший вход" - прибыльная сделка, у которой фактический ход цены
// |close - open| превысил половину риска |open - sl|. При >= 5 хороших
// входов и их доле > 70% среди сделок с SL - инсайт о мастерстве.
func detectEntryTiming(table *TradeTable) []models.Insight {
	withSL := table.Filter(func(r TradeRow) bool {
		return r.StopLoss != nil && r.ClosePrice != nil
	})
	if len(withSL) == 0 {
		return nil
	}

	good := 0
	for _, r := range withSL {
		riskDistance := utils.Abs(r.OpenPrice - *r.StopLoss)
		actualDistance := utils.Abs(*r.ClosePrice - r.OpenPrice)
		if r.NetProfit > 0 && actualDistance > riskDistance*entryRiskFraction {
			good++
		}
	}
	if good < minGoodEntries {
		return nil
	}

	rate := float64(good) / float64(len(withSL))
	if rate <= goodEntryRateThreshold {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightSkillRecognition,
		Title: "Excellent Entry Timing",
		Description: fmt.Sprintf(
			"%.1f%% of trades show precise entry timing with favorable immediate price movement.",
			rate*100),
		Value:          rate,
		Confidence:     entryTimingConfidence,
		Recommendation: "Your entry timing is excellent. Consider increasing position sizes on high-confidence setups.",
	}}
}
