package analytics

import (
	"fmt"
	"sort"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// detectors_portfolio.go - портфельные детекторы: корреляция пар,
// концентрация прибыли, эффективность капитала, ускорение роста.

// detectPairCorrelations находит сильно коррелированные символы.
//
// При >= 3 различных символах строится матрица "символ × торговый
// день" из дневных сумм net profit (отсутствие сделок = 0), затем
// попарная корреляция Пирсона. Пары с |corr| > 0.7 флагуются,
// максимум 3 инсайта.
func detectPairCorrelations(table *TradeTable) []models.Insight {
	symbols := table.Symbols()
	if len(symbols) < minSymbolsForCorrelation {
		return nil
	}

	// Дневные суммы прибыли по каждому символу
	bySymbolDate := make(map[string]map[string]float64)
	dateSet := make(map[string]struct{})
	for _, r := range table.Rows() {
		date := utils.DateKey(r.OpenTime)
		dateSet[date] = struct{}{}
		if bySymbolDate[r.Symbol] == nil {
			bySymbolDate[r.Symbol] = make(map[string]float64)
		}
		bySymbolDate[r.Symbol][date] += r.NetProfit
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	// Вектор дневных результатов символа, нули в дни без сделок
	vectors := make(map[string][]float64, len(symbols))
	for _, sym := range symbols {
		vec := make([]float64, len(dates))
		for i, d := range dates {
			vec[i] = bySymbolDate[sym][d]
		}
		vectors[sym] = vec
	}

	var insights []models.Insight
	for i := 0; i < len(symbols) && len(insights) < maxCorrelationInsights; i++ {
		for j := i + 1; j < len(symbols) && len(insights) < maxCorrelationInsights; j++ {
			corr := utils.Pearson(vectors[symbols[i]], vectors[symbols[j]])
			if utils.Abs(corr) <= correlationThreshold {
				continue
			}
			pair1, pair2 := symbols[i], symbols[j]
			insights = append(insights, models.Insight{
				Type:  models.InsightDiversification,
				Title: fmt.Sprintf("High Correlation: %s & %s", pair1, pair2),
				Description: fmt.Sprintf(
					"%s and %s show %.0f%% correlation, reducing diversification benefits.",
					pair1, pair2, utils.Abs(corr)*100),
				Value:      utils.Abs(corr),
				Confidence: correlationConfidence,
				Recommendation: fmt.Sprintf(
					"Consider reducing simultaneous exposure to %s and %s to improve portfolio diversification.",
					pair1, pair2),
			})
		}
	}
	return insights
}

// detectConcentration флагует зависимость от одного символа.
//
// При >= 3 символах и положительной суммарной прибыли: если лучший
// прибыльный символ дает более 80% общей прибыли - риск концентрации.
func detectConcentration(table *TradeTable) []models.Insight {
	symbols := table.Symbols()
	if len(symbols) < minSymbolsForCorrelation {
		return nil
	}

	profits := make(map[string]float64)
	total := 0.0
	for _, r := range table.Rows() {
		profits[r.Symbol] += r.NetProfit
		total += r.NetProfit
	}
	if total <= 0 {
		return nil
	}

	bestPair := ""
	bestProfit := 0.0
	for _, sym := range symbols {
		if profits[sym] > 0 && (bestPair == "" || profits[sym] > bestProfit) {
			bestPair = sym
			bestProfit = profits[sym]
		}
	}
	if bestPair == "" {
		return nil
	}

	share := bestProfit / total
	if share <= concentrationShare {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightConcentrationRisk,
		Title: fmt.Sprintf("Profit Concentration Risk: %s", bestPair),
		Description: fmt.Sprintf(
			"%s contributes %.1f%% of total profits, showing high concentration risk.",
			bestPair, share*100),
		Value:      share,
		Confidence: concentrationConfidence,
		Recommendation: fmt.Sprintf(
			"Consider diversifying beyond %s to reduce dependency on single pair performance.", bestPair),
	}}
}

// detectCapitalUtilization сравнивает крайние квинтили дневной
// эффективности капитала.
//
// Эффективность дня = дневная прибыль / дневной объем (дни с нулевым
// объемом пропускаются). Нужно >= 10 дней; верхний квинтиль (> q80)
// и нижний (< q20) должны содержать >= 3 дня каждый.
func detectCapitalUtilization(table *TradeTable) []models.Insight {
	daily := groupByDate(table.Rows())

	var efficiency []float64
	for _, rows := range daily {
		volume := 0.0
		for _, r := range rows {
			volume += r.Volume
		}
		if volume == 0 {
			continue
		}
		efficiency = append(efficiency, utils.Sum(netProfits(rows))/volume)
	}
	if len(efficiency) < minEfficiencyDays {
		return nil
	}

	q80 := utils.Quantile(efficiency, efficiencyTopQuantile)
	q20 := utils.Quantile(efficiency, efficiencyBottomQuantile)

	var top, bottom []float64
	for _, e := range efficiency {
		if e > q80 {
			top = append(top, e)
		} else if e < q20 {
			bottom = append(bottom, e)
		}
	}
	if len(top) < minEfficiencyGroupDays || len(bottom) < minEfficiencyGroupDays {
		return nil
	}

	diff := utils.Mean(top) - utils.Mean(bottom)
	return []models.Insight{{
		Type:  models.InsightCapitalEfficiency,
		Title: "Capital Utilization Variability",
		Description: fmt.Sprintf(
			"High-efficiency days generate $%.2f more profit per lot than low-efficiency days.", diff),
		Value:          diff,
		Confidence:     efficiencyConfidence,
		Recommendation: "Identify patterns in high-efficiency trading days to optimize capital utilization.",
	}}
}

// detectCompounding сравнивает первую и вторую половины истории.
//
// При истории длиннее 60 дней история делится по временной середине;
// флаг ускорения, если прибыль второй половины превышает первую
// более чем в 1.5 раза.
func detectCompounding(table *TradeTable) []models.Insight {
	sorted := table.SortedByOpenTime()
	if len(sorted) == 0 {
		return nil
	}

	first := sorted[0].OpenTime
	last := sorted[len(sorted)-1].OpenTime
	totalDays := utils.DaysBetween(first, last)
	if totalDays <= minCompoundingDays {
		return nil
	}

	midpoint := first.AddDate(0, 0, totalDays/2)

	var firstHalf, secondHalf []TradeRow
	for _, r := range sorted {
		if !r.OpenTime.After(midpoint) {
			firstHalf = append(firstHalf, r)
		} else {
			secondHalf = append(secondHalf, r)
		}
	}
	if len(firstHalf) == 0 || len(secondHalf) == 0 {
		return nil
	}

	firstProfit := utils.Sum(netProfits(firstHalf))
	secondProfit := utils.Sum(netProfits(secondHalf))
	if secondProfit <= firstProfit*compoundingGrowthRatio {
		return nil
	}

	return []models.Insight{{
		Type:  models.InsightGrowthAcceleration,
		Title: "Accelerating Performance Growth",
		Description: fmt.Sprintf(
			"Second half performance ($%.2f) significantly exceeds first half ($%.2f).",
			secondProfit, firstProfit),
		Value:          secondProfit - firstProfit,
		Confidence:     compoundingConfidence,
		Recommendation: "Performance is accelerating. Consider gradually increasing position sizes as account grows.",
	}}
}
