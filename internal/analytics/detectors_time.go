package analytics

import (
	"fmt"
	"sort"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// detectors_time.go - детекторы временных паттернов
//
// Все детекторы - чистые функции (TradeTable) -> []Insight:
// без побочных эффектов, без мутации таблицы. Недостаток данных -
// штатный случай пустого результата, не ошибка.

// detectGoldenHours находит "золотые окна" из последовательных
// прибыльных часов и "опасные зоны" из убыточных часов.
//
// Правила:
//   - Час участвует при >= 3 сделках.
//   - Топ-3 часа по суммарной прибыли; численно последовательные
//     (N и N+1) склеиваются в окно, требуется минимум 2 часа подряд.
//   - Уверенность окна = min(0.9, сделок/20).
//   - Опасная зона: худший час среди часов с >= 5 сделками,
//     только если его суммарный убыток превышает $100; уверенность 0.85.
func detectGoldenHours(table *TradeTable) []models.Insight {
	var insights []models.Insight

	hourly := groupByHour(table.Rows())

	// Отбрасываем часы ниже гейта
	stats := make(map[int]bucketStats)
	for hour, rows := range hourly {
		if len(rows) >= minTradesPerHour {
			stats[hour] = summarize(rows)
		}
	}
	if len(stats) == 0 {
		return nil
	}

	// Топ-3 часа по суммарной прибыли
	hours := make([]int, 0, len(stats))
	for h := range stats {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if stats[hours[i]].TotalProfit != stats[hours[j]].TotalProfit {
			return stats[hours[i]].TotalProfit > stats[hours[j]].TotalProfit
		}
		return hours[i] < hours[j]
	})
	if len(hours) > 3 {
		hours = hours[:3]
	}

	for _, period := range consecutivePeriods(hours) {
		start := period[0]
		end := period[len(period)-1]

		var totalProfit float64
		var totalTrades int
		var winRates []float64
		for _, h := range period {
			totalProfit += stats[h].TotalProfit
			totalTrades += stats[h].TradeCount
			winRates = append(winRates, stats[h].WinRate)
		}
		avgWinRate := utils.Mean(winRates)

		insights = append(insights, models.Insight{
			Type:  models.InsightGoldenHours,
			Title: fmt.Sprintf("Golden Trading Window: %d:00-%d:00", start, end+1),
			Description: fmt.Sprintf(
				"Consecutive profitable hours generated $%.2f with %.1f%% win rate across %d trades.",
				totalProfit, avgWinRate*100, totalTrades),
			Value:      totalProfit,
			Confidence: utils.Min(goldenHoursConfidenceCap, float64(totalTrades)/goldenHoursTradesNorm),
			Recommendation: fmt.Sprintf(
				"Focus trading activity during %d:00-%d:00 for maximum profitability.", start, end+1),
		})
	}

	// Опасная зона: худший час с высокой активностью
	worstHour := -1
	for hour, s := range stats {
		if s.TradeCount < minTradesDangerHour {
			continue
		}
		if worstHour == -1 || s.TotalProfit < stats[worstHour].TotalProfit {
			worstHour = hour
		}
	}
	if worstHour != -1 && stats[worstHour].TotalProfit < -dangerHourLossThreshold {
		worst := stats[worstHour]
		insights = append(insights, models.Insight{
			Type:  models.InsightDangerHour,
			Title: fmt.Sprintf("Danger Zone: %d:00", worstHour),
			Description: fmt.Sprintf(
				"Despite high activity (%d trades), %d:00 resulted in $%.2f loss.",
				worst.TradeCount, worstHour, utils.Abs(worst.TotalProfit)),
			Value:      worst.TotalProfit,
			Confidence: dangerHourConfidence,
			Recommendation: fmt.Sprintf(
				"Avoid trading at %d:00 or use reduced position sizes during this hour.", worstHour),
		})
	}

	return insights
}

// detectTradingSessions оценивает результаты по именованным сессиям.
//
// Сессии пересекаются (таблица advancedSessions). Для сессии с >= 5
// сделками: "excellence" при прибыли > $200 ИЛИ win-rate > 65%;
// иначе "warning" при убытке < -$200 ИЛИ win-rate < 35%.
// Сессия может попасть только в одну категорию - excellence
// проверяется первой.
func detectTradingSessions(table *TradeTable) []models.Insight {
	var insights []models.Insight

	for _, session := range advancedSessions {
		hours := session.Hours
		rows := table.Filter(func(r TradeRow) bool {
			return inHourSet(r.HourOpened, hours)
		})
		if len(rows) < minTradesPerSession {
			continue
		}

		s := summarize(rows)

		if s.TotalProfit > sessionExcellenceProfit || s.WinRate > sessionExcellenceWinRate {
			insights = append(insights, models.Insight{
				Type:  models.InsightSessionExcellence,
				Title: fmt.Sprintf("Session Mastery: %s", session.Name),
				Description: fmt.Sprintf(
					"%s shows exceptional performance with $%.2f profit and %.1f%% win rate.",
					session.Name, s.TotalProfit, s.WinRate*100),
				Value:      s.TotalProfit,
				Confidence: utils.Min(sessionExcellenceConfidenceCap, float64(s.TradeCount)/sessionTradesNorm),
				Recommendation: fmt.Sprintf(
					"Increase trading frequency during %s for optimal returns.", session.Name),
			})
		} else if s.TotalProfit < sessionWarningLoss || s.WinRate < sessionWarningWinRate {
			insights = append(insights, models.Insight{
				Type:  models.InsightSessionWarning,
				Title: fmt.Sprintf("Session Challenge: %s", session.Name),
				Description: fmt.Sprintf(
					"%s shows poor performance with $%.2f loss and %.1f%% win rate.",
					session.Name, utils.Abs(s.TotalProfit), s.WinRate*100),
				Value:      s.TotalProfit,
				Confidence: utils.Min(sessionWarningConfidenceCap, float64(s.TradeCount)/sessionTradesNorm),
				Recommendation: fmt.Sprintf(
					"Consider avoiding %s or using conservative position sizes.", session.Name),
			})
		}
	}

	return insights
}

// detectFridayAfternoon флагует слабые поздние пятничные сделки.
//
// Сделки с day_of_week == пятница и часом >= 15; при >= 3 таких
// сделках и (убыток < -$100 ИЛИ win-rate < 40%) - предупреждение.
func detectFridayAfternoon(table *TradeTable) []models.Insight {
	lateFriday := table.Filter(func(r TradeRow) bool {
		return r.DayOfWeek == utils.DayFriday && r.HourOpened >= fridayAfternoonHour
	})
	if len(lateFriday) < minFridayLateTrades {
		return nil
	}

	s := summarize(lateFriday)
	if s.TotalProfit >= fridayLossThreshold && s.WinRate >= fridayWinRateThreshold {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightWeeklyPattern,
		Title: "Friday Afternoon Risk",
		Description: fmt.Sprintf(
			"Late Friday trades (after 3 PM) show poor performance: $%.2f with %.1f%% win rate.",
			s.TotalProfit, s.WinRate*100),
		Value:          s.TotalProfit,
		Confidence:     fridayConfidence,
		Recommendation: "Avoid opening new positions on Friday afternoons due to weekend gap risk and reduced liquidity.",
	}}
}

// detectMonthSeasonality находит устойчиво сильный календарный месяц.
//
// Месяц участвует при >= 5 сделках, нужно >= 3 таких месяцев.
// Флаг, если прибыль лучшего месяца превышает 1.5 × |прибыль худшего|.
func detectMonthSeasonality(table *TradeTable) []models.Insight {
	monthly := groupByMonth(table.Rows())

	stats := make(map[int]bucketStats)
	for month, rows := range monthly {
		if len(rows) >= minTradesPerMonth {
			stats[month] = summarize(rows)
		}
	}
	if len(stats) < minQualifyingMonths {
		return nil
	}

	bestMonth, worstMonth := -1, -1
	for month, s := range stats {
		if bestMonth == -1 || s.TotalProfit > stats[bestMonth].TotalProfit {
			bestMonth = month
		}
		if worstMonth == -1 || s.TotalProfit < stats[worstMonth].TotalProfit {
			worstMonth = month
		}
	}

	bestProfit := stats[bestMonth].TotalProfit
	worstProfit := stats[worstMonth].TotalProfit
	if bestProfit <= utils.Abs(worstProfit)*seasonalityRatio {
		return nil
	}

	name := utils.MonthNameShort(bestMonth)
	return []models.Insight{{
		Type:  models.InsightSeasonalPattern,
		Title: fmt.Sprintf("Strong Seasonal Performance: %s", name),
		Description: fmt.Sprintf(
			"%s consistently shows strong performance with $%.2f average profit.", name, bestProfit),
		Value:      bestProfit,
		Confidence: seasonalityConfidence,
		Recommendation: fmt.Sprintf(
			"Consider increasing trading activity during %s based on historical seasonal strength.", name),
	}}
}

// detectMonthlyCycle сравнивает первую и последнюю неделю месяца.
//
// Упрощенный прокси экономического календаря (NFP в первую пятницу
// и т.п.): сделки с днем месяца <= 7 против дней >= 25. Флаг при
// разнице средних результатов больше $20.
func detectMonthlyCycle(table *TradeTable) []models.Insight {
	monthStart := table.Filter(func(r TradeRow) bool {
		return r.OpenTime.Day() <= monthEdgeFirstDay
	})
	monthEnd := table.Filter(func(r TradeRow) bool {
		return r.OpenTime.Day() >= monthEdgeLastDay
	})
	if len(monthStart) == 0 || len(monthEnd) == 0 {
		return nil
	}

	startAvg := utils.Mean(netProfits(monthStart))
	endAvg := utils.Mean(netProfits(monthEnd))
	diff := utils.Abs(startAvg - endAvg)
	if diff <= monthCycleDiffThreshold {
		return nil
	}

	betterPeriod := "Start"
	weekLabel := "First week"
	activityLabel := "first"
	if endAvg > startAvg {
		betterPeriod = "End"
		weekLabel = "Last week"
		activityLabel = "last"
	}

	return []models.Insight{{
		Type:  models.InsightMonthlyCycle,
		Title: fmt.Sprintf("Monthly Performance Cycle: %s", betterPeriod),
		Description: fmt.Sprintf(
			"%s of month shows $%.2f better average performance.", weekLabel, diff),
		Value:      diff,
		Confidence: monthCycleConfidence,
		Recommendation: fmt.Sprintf(
			"Consider increased activity during %s week of month.", activityLabel),
	}}
}

// detectNewsHours сравнивает волатильность новостных часов с фоновой.
//
// Фиксированный набор часов {8, 9, 14, 15, 16}; флаг, если stddev
// результата в новостные часы превышает 1.5 × фоновой stddev.
func detectNewsHours(table *TradeTable) []models.Insight {
	newsRows := table.Filter(func(r TradeRow) bool {
		return inHourSet(r.HourOpened, newsHours)
	})
	otherRows := table.Filter(func(r TradeRow) bool {
		return !inHourSet(r.HourOpened, newsHours)
	})
	if len(newsRows) == 0 || len(otherRows) == 0 {
		return nil
	}

	newsVol := utils.StdDev(netProfits(newsRows))
	baseVol := utils.StdDev(netProfits(otherRows))
	// Вырожденная фоновая волатильность - сравнение не имеет смысла
	if baseVol == 0 || newsVol <= baseVol*newsVolatilityRatio {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightMarketTiming,
		Title: "High Volatility During News Hours",
		Description: fmt.Sprintf(
			"Trading during news hours shows %.0f%% higher volatility.",
			(newsVol/baseVol-1)*100),
		Value:          newsVol - baseVol,
		Confidence:     newsConfidence,
		Recommendation: "Use smaller position sizes during major news hours (8-9 AM, 2-4 PM EST) due to increased volatility.",
	}}
}

// detectWeekendGap оценивает экспозицию на гэп через выходные.
//
// Сделки, открытые в пятницу >= 20:00 или воскресенье < 04:00;
// флаг при волатильности этой группы выше 1.3 × остальных сделок.
func detectWeekendGap(table *TradeTable) []models.Insight {
	isExposed := func(r TradeRow) bool {
		if r.DayOfWeek == utils.DayFriday && r.HourOpened >= weekendFridayHour {
			return true
		}
		return r.DayOfWeek == utils.DaySunday && r.HourOpened < weekendSundayHour
	}

	exposed := table.Filter(isExposed)
	regular := table.Filter(func(r TradeRow) bool { return !isExposed(r) })
	if len(exposed) == 0 || len(regular) == 0 {
		return nil
	}

	weekendVol := utils.StdDev(netProfits(exposed))
	regularVol := utils.StdDev(netProfits(regular))
	if regularVol == 0 || weekendVol <= regularVol*weekendVolatilityRatio {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightGapRisk,
		Title: "Weekend Gap Risk Exposure",
		Description: fmt.Sprintf(
			"Weekend-exposed trades show %.0f%% higher volatility.",
			(weekendVol/regularVol-1)*100),
		Value:          weekendVol,
		Confidence:     weekendConfidence,
		Recommendation: "Consider closing positions before weekend or using tighter stops for weekend-held trades.",
	}}
}

// detectWeeklyCycles находит чередование прибыльных и убыточных недель.
//
// Нужно >= 8 недельных бакетов; считается доля смен знака между
// последовательными недельными итогами; флаг при доле > 70%.
func detectWeeklyCycles(table *TradeTable) []models.Insight {
	weekly := groupByWeek(table.Rows())
	if len(weekly) < minWeeklyBuckets {
		return nil
	}

	keys := make([]string, 0, len(weekly))
	for k := range weekly {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	totals := make([]float64, len(keys))
	for i, k := range keys {
		totals[i] = utils.Sum(netProfits(weekly[k]))
	}

	flips := 0
	for i := 1; i < len(totals); i++ {
		if (totals[i] > 0) != (totals[i-1] > 0) {
			flips++
		}
	}
	ratio := float64(flips) / float64(len(totals)-1)
	if ratio <= alternationRatioThreshold {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightCyclicalPattern,
		Title: "Weekly Performance Cycles",
		Description: fmt.Sprintf(
			"Performance shows %.0f%% alternating weekly pattern between profitable and unprofitable periods.",
			ratio*100),
		Value:          ratio,
		Confidence:     cyclicalConfidence,
		Recommendation: "Consider reducing activity during historically weak weeks and increasing during strong weeks.",
	}}
}
