package analytics

import (
	"fmt"
	"sort"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// basic.go - legacy детектор паттернов
//
// Назначение:
// Облегченный предшественник движка из engine.go, сохраненный как
// отдельный код-путь. Отличия от advanced движка намеренные:
// свои пороги (basic* в constants.go), своя таблица сессий,
// сортировка по кортежу (confidence, |value|) вместо произведения
// и отсутствие усечения до топ-20.

// DetectBasicTimePatterns возвращает часовые, дневные и сессионные
// инсайты legacy пути.
func DetectBasicTimePatterns(table *TradeTable) []models.Insight {
	if table.IsEmpty() {
		return []models.Insight{}
	}

	var insights []models.Insight
	insights = append(insights, basicHourlyPatterns(table)...)
	insights = append(insights, basicDailyPatterns(table)...)
	insights = append(insights, basicSessionPatterns(table)...)
	return insights
}

// DetectBasicPairPatterns возвращает инсайты по торговым парам:
// лучшая, худшая и риск-анализ.
func DetectBasicPairPatterns(table *TradeTable) []models.Insight {
	if table.IsEmpty() {
		return []models.Insight{}
	}

	var insights []models.Insight
	insights = append(insights, basicBestPair(table)...)
	insights = append(insights, basicWorstPair(table)...)
	insights = append(insights, basicPairRisk(table)...)
	return insights
}

// RankBasicInsights сортирует по убыванию кортежа (confidence, |value|).
// Сортировка стабильная, список не усекается.
func RankBasicInsights(insights []models.Insight) []models.Insight {
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Confidence != insights[j].Confidence {
			return insights[i].Confidence > insights[j].Confidence
		}
		return utils.Abs(insights[i].Value) > utils.Abs(insights[j].Value)
	})
	return insights
}

// basicHourlyPatterns находит лучший и худший часы (гейт 5 сделок)
func basicHourlyPatterns(table *TradeTable) []models.Insight {
	hourly := groupByHour(table.Rows())

	stats := make(map[int]bucketStats)
	for hour, rows := range hourly {
		if len(rows) >= basicMinTradesPerHour {
			stats[hour] = summarize(rows)
		}
	}
	if len(stats) == 0 {
		return nil
	}

	bestHour, worstHour := -1, -1
	for hour, s := range stats {
		if bestHour == -1 || s.TotalProfit > stats[bestHour].TotalProfit {
			bestHour = hour
		}
		if worstHour == -1 || s.TotalProfit < stats[worstHour].TotalProfit {
			worstHour = hour
		}
	}

	var insights []models.Insight

	best := stats[bestHour]
	insights = append(insights, models.Insight{
		Type:  models.InsightTimePattern,
		Title: fmt.Sprintf("Most Profitable Hour: %d:00", bestHour),
		Description: fmt.Sprintf(
			"Trading at %d:00 generated $%.2f total profit with %.1f%% win rate across %d trades.",
			bestHour, best.TotalProfit, best.WinRate*100, best.TradeCount),
		Value:      best.TotalProfit,
		Confidence: utils.Min(basicBestHourConfidenceCap, float64(best.TradeCount)/basicHourTradesNorm),
		Recommendation: fmt.Sprintf(
			"Consider increasing trading activity around %d:00 for optimal performance.", bestHour),
	})

	worst := stats[worstHour]
	if worst.TotalProfit < basicWorstHourLoss {
		insights = append(insights, models.Insight{
			Type:  models.InsightTimePattern,
			Title: fmt.Sprintf("Least Profitable Hour: %d:00", worstHour),
			Description: fmt.Sprintf(
				"Trading at %d:00 resulted in $%.2f total loss with %.1f%% win rate.",
				worstHour, utils.Abs(worst.TotalProfit), worst.WinRate*100),
			Value:      worst.TotalProfit,
			Confidence: utils.Min(basicWorstHourConfidenceCap, float64(worst.TradeCount)/basicHourTradesNorm),
			Recommendation: fmt.Sprintf(
				"Consider avoiding trades around %d:00 or reducing position sizes during this hour.", worstHour),
		})
	}

	return insights
}

// basicDailyPatterns находит лучший день недели и пятничный риск
func basicDailyPatterns(table *TradeTable) []models.Insight {
	daily := groupByDay(table.Rows())

	stats := make(map[int]bucketStats)
	for day, rows := range daily {
		if len(rows) >= basicMinTradesPerDay {
			stats[day] = summarize(rows)
		}
	}
	if len(stats) == 0 {
		return nil
	}

	bestDay := -1
	for day, s := range stats {
		if bestDay == -1 || s.TotalProfit > stats[bestDay].TotalProfit {
			bestDay = day
		}
	}

	var insights []models.Insight

	best := stats[bestDay]
	bestName := utils.DayNameFull(bestDay)
	insights = append(insights, models.Insight{
		Type:  models.InsightTimePattern,
		Title: fmt.Sprintf("Most Profitable Day: %s", bestName),
		Description: fmt.Sprintf(
			"%s trading generated $%.2f total profit with %.1f%% win rate.",
			bestName, best.TotalProfit, best.WinRate*100),
		Value:      best.TotalProfit,
		Confidence: utils.Min(basicBestDayConfidenceCap, float64(best.TradeCount)/basicDayTradesNorm),
		Recommendation: fmt.Sprintf(
			"Consider concentrating more trading activity on %ss.", bestName),
	})

	if friday, ok := stats[utils.DayFriday]; ok && friday.WinRate < basicFridayWinRate {
		insights = append(insights, models.Insight{
			Type:  models.InsightTimePattern,
			Title: "Friday Trading Warning",
			Description: fmt.Sprintf(
				"Friday trading shows %.1f%% win rate, indicating increased risk.",
				friday.WinRate*100),
			Value:          friday.TotalProfit,
			Confidence:     basicFridayConfidence,
			Recommendation: "Consider reducing position sizes or avoiding trades on Fridays due to increased volatility.",
		})
	}

	return insights
}

// basicSessionPatterns отмечает сильные сессии (прибыль или win-rate)
func basicSessionPatterns(table *TradeTable) []models.Insight {
	var insights []models.Insight

	for _, session := range basicSessions {
		hours := session.Hours
		rows := table.Filter(func(r TradeRow) bool {
			return inHourSet(r.HourOpened, hours)
		})
		if len(rows) < basicMinTradesPerSession {
			continue
		}

		s := summarize(rows)
		if s.TotalProfit <= basicSessionProfit && s.WinRate <= basicSessionWinRate {
			continue
		}

		insights = append(insights, models.Insight{
			Type:  models.InsightSessionPattern,
			Title: fmt.Sprintf("Strong %s Session Performance", session.Name),
			Description: fmt.Sprintf(
				"%s session trading shows $%.2f total profit with %.1f%% win rate across %d trades.",
				session.Name, s.TotalProfit, s.WinRate*100, s.TradeCount),
			Value:      s.TotalProfit,
			Confidence: utils.Min(basicSessionConfidenceCap, float64(s.TradeCount)/basicSessionTradesNorm),
			Recommendation: fmt.Sprintf(
				"Consider increasing exposure during %s session hours.", session.Name),
		})
	}

	return insights
}

// basicBestPair находит лучшую пару (гейт 5 сделок)
func basicBestPair(table *TradeTable) []models.Insight {
	stats := symbolStatsWithGate(table, basicMinTradesBestPair)
	if len(stats) == 0 {
		return nil
	}

	bestPair := ""
	for sym, s := range stats {
		if bestPair == "" || s.TotalProfit > stats[bestPair].TotalProfit {
			bestPair = sym
		}
	}

	best := stats[bestPair]
	return []models.Insight{{
		Type:  models.InsightPairPerformance,
		Title: fmt.Sprintf("Top Performing Pair: %s", bestPair),
		Description: fmt.Sprintf(
			"%s generated $%.2f total profit with %.1f%% win rate across %d trades.",
			bestPair, best.TotalProfit, best.WinRate*100, best.TradeCount),
		Value:      best.TotalProfit,
		Confidence: utils.Min(basicBestPairConfidenceCap, float64(best.TradeCount)/basicPairTradesNorm),
		Recommendation: fmt.Sprintf(
			"Consider increasing allocation to %s trades based on strong historical performance.", bestPair),
	}}
}

// basicWorstPair находит проблемную пару (гейт 3, убыток < -$50)
func basicWorstPair(table *TradeTable) []models.Insight {
	stats := symbolStatsWithGate(table, basicMinTradesWorstPair)

	worstPair := ""
	for sym, s := range stats {
		if s.TotalProfit >= basicWorstPairLoss {
			continue
		}
		if worstPair == "" || s.TotalProfit < stats[worstPair].TotalProfit {
			worstPair = sym
		}
	}
	if worstPair == "" {
		return nil
	}

	worst := stats[worstPair]
	return []models.Insight{{
		Type:  models.InsightPairPerformance,
		Title: fmt.Sprintf("Underperforming Pair: %s", worstPair),
		Description: fmt.Sprintf(
			"%s resulted in $%.2f total loss with %.1f%% win rate.",
			worstPair, utils.Abs(worst.TotalProfit), worst.WinRate*100),
		Value:      worst.TotalProfit,
		Confidence: utils.Min(basicWorstPairConfidenceCap, float64(worst.TradeCount)/basicWorstPairTradesNorm),
		Recommendation: fmt.Sprintf(
			"Consider avoiding %s trades or reducing position sizes until performance improves.", worstPair),
	}}
}

// basicPairRisk флагует пару с высоким отношением stddev к |средней|.
// Вырожденное отношение (нулевая средняя или stddev) считается нулем.
func basicPairRisk(table *TradeTable) []models.Insight {
	stats := symbolStatsWithGate(table, basicMinTradesPairRisk)
	if len(stats) == 0 {
		return nil
	}

	highVolPair := ""
	highRatio := 0.0
	for sym, s := range stats {
		ratio := utils.SafeRatio(s.ProfitStd, utils.Abs(s.AvgProfit))
		if highVolPair == "" || ratio > highRatio {
			highVolPair = sym
			highRatio = ratio
		}
	}
	if highRatio <= basicVolatilityRatio {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightRiskAnalysis,
		Title: fmt.Sprintf("High Volatility Warning: %s", highVolPair),
		Description: fmt.Sprintf(
			"%s shows high profit volatility (σ/μ = %.1f), indicating inconsistent performance.",
			highVolPair, highRatio),
		Value:      highRatio,
		Confidence: basicPairRiskConfidence,
		Recommendation: fmt.Sprintf(
			"Consider using smaller position sizes for %s due to high volatility.", highVolPair),
	}}
}

// symbolStatsWithGate агрегирует статистику по символам с гейтом
func symbolStatsWithGate(table *TradeTable, minTrades int) map[string]bucketStats {
	stats := make(map[string]bucketStats)
	for sym, rows := range groupBySymbol(table.Rows()) {
		if len(rows) >= minTrades {
			stats[sym] = summarize(rows)
		}
	}
	return stats
}
