package analytics

import (
	"math"
	"testing"
	"time"

	"tradeinsight/internal/models"
)

// ============================================================
// Тесты отчетов
// ============================================================

func TestComputeAccountMetrics(t *testing.T) {
	open := newTrade(at(13, 0), 25)
	open.CloseTime = nil

	table := tableOf(
		newTrade(at(9, 0), 100),
		newTrade(at(10, 0), -40),
		newTrade(at(11, 0), 60),
		newTrade(at(12, 0), -20),
		open,
	)

	m := ComputeAccountMetrics(table)

	if m.TotalTrades != 5 {
		t.Errorf("TotalTrades = %d, want 5", m.TotalTrades)
	}
	if m.ClosedTrades != 4 {
		t.Errorf("ClosedTrades = %d, want 4", m.ClosedTrades)
	}
	if m.TotalProfit != 125 {
		t.Errorf("TotalProfit = %v, want 125", m.TotalProfit)
	}
	if m.TotalProfit != 125 || m.AvgProfit != 25 {
		t.Errorf("AvgProfit = %v, want 25", m.AvgProfit)
	}
	if m.WinRate != 60 {
		t.Errorf("WinRate = %v, want 60 (проценты)", m.WinRate)
	}
	// Валовая прибыль 185, валовый убыток 60
	want := 185.0 / 60.0
	if math.Abs(m.ProfitFactor-want) > 1e-9 {
		t.Errorf("ProfitFactor = %v, want %v", m.ProfitFactor, want)
	}
	if m.LargestWin != 100 || m.LargestLoss != -40 {
		t.Errorf("LargestWin/Loss = %v/%v, want 100/-40", m.LargestWin, m.LargestLoss)
	}
}

func TestComputeAccountMetrics_NoLosses(t *testing.T) {
	table := tableOf(newTrade(at(9, 0), 100), newTrade(at(10, 0), 50))

	m := ComputeAccountMetrics(table)
	// Без убытков profit factor вырожден: 0, а не бесконечность
	if m.ProfitFactor != 0 {
		t.Errorf("ProfitFactor = %v, want 0", m.ProfitFactor)
	}
	if math.IsInf(m.ProfitFactor, 0) || math.IsNaN(m.ProfitFactor) {
		t.Errorf("ProfitFactor не конечен: %v", m.ProfitFactor)
	}
}

func TestComputeAccountMetrics_Empty(t *testing.T) {
	m := ComputeAccountMetrics(BuildTradeTable(nil))
	if m.TotalTrades != 0 || m.TotalProfit != 0 || m.MaxDrawdown.Amount != 0 {
		t.Errorf("метрики пустой таблицы не нулевые: %+v", m)
	}
}

func TestMaxDrawdown(t *testing.T) {
	// Кумулятивная кривая: 100, 150, 70, 30, 130
	// Пик 150, дно 30: просадка 120, процент 80
	table := tableOf(
		newTrade(at(9, 0), 100),
		newTrade(at(10, 0), 50),
		newTrade(at(11, 0), -80),
		newTrade(at(12, 0), -40),
		newTrade(at(13, 0), 100),
	)

	dd := maxDrawdown(table)
	if dd.Amount != 120 {
		t.Errorf("Amount = %v, want 120", dd.Amount)
	}
	if dd.Percentage != 80 {
		t.Errorf("Percentage = %v, want 80", dd.Percentage)
	}
}

func TestMaxDrawdown_MonotonicGrowth(t *testing.T) {
	table := tableOf(
		newTrade(at(9, 0), 10),
		newTrade(at(10, 0), 20),
		newTrade(at(11, 0), 30),
	)

	dd := maxDrawdown(table)
	if dd.Amount != 0 || dd.Percentage != 0 {
		t.Errorf("просадка на монотонном росте: %+v", dd)
	}
}

func TestHourlyProfile(t *testing.T) {
	table := tableOf(
		newTrade(at(9, 0), 100),
		newTrade(at(9, 30), -50),
		newTrade(at(15, 0), 70),
	)

	profile := HourlyProfile(table)
	if len(profile) != 24 {
		t.Fatalf("len = %d, want 24 (все часы)", len(profile))
	}

	nine := profile[9]
	if nine.Profit != 50 || nine.TradeCount != 2 || nine.WinRate != 50 {
		t.Errorf("час 9: %+v", nine)
	}

	// Час без сделок присутствует с нулями
	if profile[3].TradeCount != 0 || profile[3].Profit != 0 {
		t.Errorf("пустой час не нулевой: %+v", profile[3])
	}
	for i, h := range profile {
		if h.Hour != i {
			t.Fatalf("profile[%d].Hour = %d", i, h.Hour)
		}
	}
}

func TestDailyProfile(t *testing.T) {
	// Среда 2024-01-10 и пятница 2024-01-12
	table := tableOf(
		newTrade(onDay(2024, time.January, 10, 10), 100),
		newTrade(onDay(2024, time.January, 12, 10), -30),
	)

	profile := DailyProfile(table)
	if len(profile) != 7 {
		t.Fatalf("len = %d, want 7", len(profile))
	}

	if profile[0].Day != "Mon" || profile[6].Day != "Sun" {
		t.Errorf("порядок дней: %s..%s, want Mon..Sun", profile[0].Day, profile[6].Day)
	}
	if profile[2].Profit != 100 {
		t.Errorf("среда: %+v", profile[2])
	}
	if profile[4].Profit != -30 {
		t.Errorf("пятница: %+v", profile[4])
	}
}

func TestPairPerformance(t *testing.T) {
	table := tableOf(
		newTrade(at(9, 0), 30, withSymbol("GBPUSD")),
		newTrade(at(10, 0), 100, withSymbol("EURUSD")),
		newTrade(at(11, 0), 40, withSymbol("EURUSD")),
		newTrade(at(12, 0), -20, withSymbol("USDJPY")),
	)

	stats := PairPerformance(table)
	if len(stats) != 3 {
		t.Fatalf("len = %d, want 3", len(stats))
	}

	// По убыванию суммарной прибыли
	if stats[0].Symbol != "EURUSD" || stats[1].Symbol != "GBPUSD" || stats[2].Symbol != "USDJPY" {
		t.Errorf("порядок: %s %s %s", stats[0].Symbol, stats[1].Symbol, stats[2].Symbol)
	}
	if stats[0].Profit != 140 || stats[0].TradeCount != 2 {
		t.Errorf("EURUSD: %+v", stats[0])
	}
	// Одна сделка: stddev 0, риск-скор вырожден в 0
	if stats[2].RiskScore != 0 {
		t.Errorf("RiskScore = %v, want 0", stats[2].RiskScore)
	}
}

func TestHourlyHeatmap(t *testing.T) {
	table := tableOf(
		newTrade(at(9, 0), 100),
		newTrade(at(15, 0), -40),
	)

	hm := HourlyHeatmap(table)
	if hm.MaxProfit != 100 || hm.MinProfit != -40 {
		t.Errorf("Max/Min = %v/%v, want 100/-40", hm.MaxProfit, hm.MinProfit)
	}

	data, ok := hm.Data.([]models.HourStat)
	if !ok {
		t.Fatalf("Data имеет тип %T", hm.Data)
	}
	if len(data) != 24 {
		t.Errorf("len(Data) = %d, want 24", len(data))
	}
}

func TestHeatmap_Empty(t *testing.T) {
	empty := BuildTradeTable(nil)

	hourly := HourlyHeatmap(empty)
	if hourly.MaxProfit != 0 || hourly.MinProfit != 0 {
		t.Errorf("пустая теплокарта: %+v", hourly)
	}
	if data, ok := hourly.Data.([]models.HourStat); !ok || len(data) != 0 {
		t.Errorf("Data = %#v, want пустой слайс", hourly.Data)
	}

	daily := DailyHeatmap(empty)
	if data, ok := daily.Data.([]models.DayStat); !ok || len(data) != 0 {
		t.Errorf("Data = %#v, want пустой слайс", daily.Data)
	}
}
