package analytics

import (
	"tradeinsight/pkg/utils"
)

// stats.go - группировка и агрегация строк таблицы
//
// Назначение:
// Явная замена dataframe-style groupby/aggregate идиом:
// map от ключа бакета к строкам плюс один проход на статистику.
// Никаких скрытых приведений типов; stddev считается явной
// выборочной формулой с защитой случая n < 2.

// bucketStats - агрегаты одного бакета строк
type bucketStats struct {
	TotalProfit float64
	AvgProfit   float64
	ProfitStd   float64
	WinRate     float64 // доля в [0, 1]
	TradeCount  int
}

// summarize считает агрегаты по набору строк
func summarize(rows []TradeRow) bucketStats {
	profits := netProfits(rows)
	return bucketStats{
		TotalProfit: utils.Sum(profits),
		AvgProfit:   utils.Mean(profits),
		ProfitStd:   utils.StdDev(profits),
		WinRate:     utils.WinRate(profits),
		TradeCount:  len(rows),
	}
}

// netProfits извлекает чистую прибыль из набора строк
func netProfits(rows []TradeRow) []float64 {
	profits := make([]float64, len(rows))
	for i, row := range rows {
		profits[i] = row.NetProfit
	}
	return profits
}

// groupByHour группирует строки по часу открытия (0-23)
func groupByHour(rows []TradeRow) map[int][]TradeRow {
	groups := make(map[int][]TradeRow)
	for _, row := range rows {
		groups[row.HourOpened] = append(groups[row.HourOpened], row)
	}
	return groups
}

// groupByDay группирует строки по дню недели (Понедельник = 0)
func groupByDay(rows []TradeRow) map[int][]TradeRow {
	groups := make(map[int][]TradeRow)
	for _, row := range rows {
		groups[row.DayOfWeek] = append(groups[row.DayOfWeek], row)
	}
	return groups
}

// groupByMonth группирует строки по календарному месяцу (1-12)
func groupByMonth(rows []TradeRow) map[int][]TradeRow {
	groups := make(map[int][]TradeRow)
	for _, row := range rows {
		groups[row.Month] = append(groups[row.Month], row)
	}
	return groups
}

// groupBySymbol группирует строки по торговому символу
func groupBySymbol(rows []TradeRow) map[string][]TradeRow {
	groups := make(map[string][]TradeRow)
	for _, row := range rows {
		groups[row.Symbol] = append(groups[row.Symbol], row)
	}
	return groups
}

// groupByDate группирует строки по календарному дню (ключ YYYY-MM-DD)
func groupByDate(rows []TradeRow) map[string][]TradeRow {
	groups := make(map[string][]TradeRow)
	for _, row := range rows {
		key := utils.DateKey(row.OpenTime)
		groups[key] = append(groups[key], row)
	}
	return groups
}

// groupByWeek группирует строки по ISO-неделе (ключ YYYY-WW)
func groupByWeek(rows []TradeRow) map[string][]TradeRow {
	groups := make(map[string][]TradeRow)
	for _, row := range rows {
		key := utils.WeekKey(row.OpenTime)
		groups[key] = append(groups[key], row)
	}
	return groups
}

// filterRows возвращает строки, удовлетворяющие предикату
func filterRows(rows []TradeRow, pred func(TradeRow) bool) []TradeRow {
	var out []TradeRow
	for _, row := range rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// inHourSet проверяет принадлежность часа набору часов сессии
func inHourSet(hour int, hours []int) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}

// consecutivePeriods находит группы последовательных часов.
//
// Вход: отсортированный или несортированный список часов.
// Выход: группы длиной >= minConsecutiveHours, каждая - набор
// численно последовательных часов (N, N+1, ...).
//
// Граница суток НЕ замыкается: час 23 и час 0 не считаются
// последовательными (поведение сохранено от исходной эвристики).
func consecutivePeriods(hours []int) [][]int {
	if len(hours) == 0 {
		return nil
	}

	sorted := make([]int, len(hours))
	copy(sorted, hours)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var groups [][]int
	current := []int{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			current = append(current, sorted[i])
		} else {
			groups = append(groups, current)
			current = []int{sorted[i]}
		}
	}
	groups = append(groups, current)

	var qualified [][]int
	for _, g := range groups {
		if len(g) >= minConsecutiveHours {
			qualified = append(qualified, g)
		}
	}
	return qualified
}

// streakLengths возвращает длины серий подряд идущих значений,
// удовлетворяющих предикату, в хронологическом порядке строк.
//
// Серия, продолжающаяся до конца ряда, тоже учитывается.
func streakLengths(rows []TradeRow, pred func(TradeRow) bool) []int {
	var streaks []int
	current := 0
	for _, row := range rows {
		if pred(row) {
			current++
		} else {
			if current > 0 {
				streaks = append(streaks, current)
			}
			current = 0
		}
	}
	if current > 0 {
		streaks = append(streaks, current)
	}
	return streaks
}

// maxInt возвращает максимум слайса, 0 для пустого
func maxInt(values []int) int {
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// meanInt возвращает среднее слайса целых, 0 для пустого
func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
