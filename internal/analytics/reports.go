package analytics

import (
	"sort"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// reports.go - агрегированные отчеты для frontend: базовые метрики
// счета, почасовой и дневной профили, производительность пар,
// теплокарты. В отличие от детекторов отчеты не фильтруют по гейтам:
// пустые бакеты отдаются нулями, чтобы графики имели полную ось.

// ComputeAccountMetrics считает базовые метрики счета.
//
// Особые случаи:
//   - Пустая таблица: нулевая структура.
//   - Отсутствие убытков: profit factor = 0, не бесконечность -
//     все значения ответа остаются конечными и сериализуемыми.
func ComputeAccountMetrics(table *TradeTable) models.AccountMetrics {
	if table.IsEmpty() {
		return models.AccountMetrics{}
	}

	rows := table.Rows()
	profits := netProfits(rows)

	closed := 0
	for _, r := range rows {
		if r.CloseTime != nil {
			closed++
		}
	}

	largestWin, largestLoss := profits[0], profits[0]
	for _, p := range profits {
		largestWin = utils.Max(largestWin, p)
		largestLoss = utils.Min(largestLoss, p)
	}

	return models.AccountMetrics{
		TotalTrades:  len(rows),
		ClosedTrades: closed,
		TotalProfit:  utils.Sum(profits),
		AvgProfit:    utils.Mean(profits),
		WinRate:      utils.WinRate(profits) * 100,
		ProfitFactor: profitFactor(profits),
		MaxDrawdown:  maxDrawdown(table),
		LargestWin:   largestWin,
		LargestLoss:  largestLoss,
	}
}

// profitFactor = валовая прибыль / |валовый убыток|, 0 без убытков
func profitFactor(profits []float64) float64 {
	grossProfit, grossLoss := 0.0, 0.0
	for _, p := range profits {
		if p > 0 {
			grossProfit += p
		} else if p < 0 {
			grossLoss += -p
		}
	}
	return utils.SafeRatio(grossProfit, grossLoss)
}

// maxDrawdown считает максимальную просадку кумулятивной кривой
// прибыли: бегущий пик минус текущее значение, максимум по истории.
func maxDrawdown(table *TradeTable) models.Drawdown {
	sorted := table.SortedByOpenTime()

	cumulative := 0.0
	peak := 0.0
	first := true

	maxAmount := 0.0
	peakAtMax := 0.0
	for _, r := range sorted {
		cumulative += r.NetProfit
		if first || cumulative > peak {
			peak = cumulative
			first = false
		}
		if dd := peak - cumulative; dd > maxAmount {
			maxAmount = dd
			peakAtMax = peak
		}
	}

	var percentage float64
	if peakAtMax != 0 {
		percentage = maxAmount / peakAtMax * 100
	}
	return models.Drawdown{Amount: maxAmount, Percentage: percentage}
}

// HourlyProfile строит полный 24-часовой профиль прибыльности.
// Часы без сделок присутствуют с нулевой статистикой.
func HourlyProfile(table *TradeTable) []models.HourStat {
	hourly := groupByHour(table.Rows())

	profile := make([]models.HourStat, 24)
	for hour := 0; hour < 24; hour++ {
		stat := models.HourStat{Hour: hour}
		if rows, ok := hourly[hour]; ok {
			s := summarize(rows)
			stat.Profit = s.TotalProfit
			stat.TradeCount = s.TradeCount
			stat.WinRate = s.WinRate * 100
			stat.AvgProfit = s.AvgProfit
		}
		profile[hour] = stat
	}
	return profile
}

// DailyProfile строит полный 7-дневный профиль (понедельник первый)
func DailyProfile(table *TradeTable) []models.DayStat {
	daily := groupByDay(table.Rows())

	profile := make([]models.DayStat, 7)
	for day := 0; day < 7; day++ {
		stat := models.DayStat{Day: utils.DayNameShort(day), DayIndex: day}
		if rows, ok := daily[day]; ok {
			s := summarize(rows)
			stat.Profit = s.TotalProfit
			stat.TradeCount = s.TradeCount
			stat.WinRate = s.WinRate * 100
			stat.AvgProfit = s.AvgProfit
		}
		profile[day] = stat
	}
	return profile
}

// PairPerformance строит статистику по символам с риск-скором,
// отсортированную по суммарной прибыли по убыванию.
func PairPerformance(table *TradeTable) []models.SymbolStat {
	bySymbol := groupBySymbol(table.Rows())

	stats := make([]models.SymbolStat, 0, len(bySymbol))
	for symbol, rows := range bySymbol {
		s := summarize(rows)
		stats = append(stats, models.SymbolStat{
			Symbol:     symbol,
			Profit:     s.TotalProfit,
			TradeCount: s.TradeCount,
			WinRate:    s.WinRate * 100,
			AvgProfit:  s.AvgProfit,
			RiskScore:  utils.SafeRatio(s.ProfitStd, utils.Abs(s.AvgProfit)),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Profit != stats[j].Profit {
			return stats[i].Profit > stats[j].Profit
		}
		return stats[i].Symbol < stats[j].Symbol
	})
	return stats
}

// HourlyHeatmap строит теплокарту по часам суток
func HourlyHeatmap(table *TradeTable) models.Heatmap {
	if table.IsEmpty() {
		return models.Heatmap{Data: []models.HourStat{}}
	}

	profile := HourlyProfile(table)
	maxProfit, minProfit := profile[0].Profit, profile[0].Profit
	for _, h := range profile {
		maxProfit = utils.Max(maxProfit, h.Profit)
		minProfit = utils.Min(minProfit, h.Profit)
	}
	return models.Heatmap{Data: profile, MaxProfit: maxProfit, MinProfit: minProfit}
}

// DailyHeatmap строит теплокарту по дням недели
func DailyHeatmap(table *TradeTable) models.Heatmap {
	if table.IsEmpty() {
		return models.Heatmap{Data: []models.DayStat{}}
	}

	profile := DailyProfile(table)
	maxProfit, minProfit := profile[0].Profit, profile[0].Profit
	for _, d := range profile {
		maxProfit = utils.Max(maxProfit, d.Profit)
		minProfit = utils.Min(minProfit, d.Profit)
	}
	return models.Heatmap{Data: profile, MaxProfit: maxProfit, MinProfit: minProfit}
}
