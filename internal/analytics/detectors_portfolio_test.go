package analytics

import (
	"strings"
	"testing"
	"time"

	"tradeinsight/internal/models"
)

// ============================================================
// Тесты портфельных детекторов
// ============================================================

func TestDetectPairCorrelations(t *testing.T) {
	var trades []*models.Trade
	// EURUSD и GBPUSD движутся синхронно десять дней, USDJPY - шумно
	eurProfits := []float64{10, -20, 30, -40, 50, -60, 70, -80, 90, -100}
	jpyProfits := []float64{5, 7, -3, 4, -6, 2, 8, -1, 3, -2}
	for i := 0; i < 10; i++ {
		day := onDay(2024, time.January, 8+i, 10)
		trades = append(trades,
			newTrade(day, eurProfits[i], withSymbol("EURUSD")),
			newTrade(day.Add(time.Hour), eurProfits[i]*2, withSymbol("GBPUSD")),
			newTrade(day.Add(2*time.Hour), jpyProfits[i], withSymbol("USDJPY")),
		)
	}

	insights := detectPairCorrelations(BuildTradeTable(trades))
	if len(insights) == 0 {
		t.Fatal("нет инсайтов о корреляции")
	}

	found := false
	for _, ins := range insights {
		if strings.Contains(ins.Title, "EURUSD") && strings.Contains(ins.Title, "GBPUSD") {
			found = true
			if ins.Value < 0.99 {
				t.Errorf("Value = %v, want ~1.0 для идеальной корреляции", ins.Value)
			}
			if ins.Confidence != correlationConfidence {
				t.Errorf("Confidence = %v", ins.Confidence)
			}
		}
	}
	if !found {
		t.Errorf("пара EURUSD/GBPUSD не найдена: %+v", insights)
	}
}

func TestDetectPairCorrelations_TwoSymbols(t *testing.T) {
	var trades []*models.Trade
	for i := 0; i < 5; i++ {
		day := onDay(2024, time.January, 8+i, 10)
		trades = append(trades,
			newTrade(day, 10, withSymbol("EURUSD")),
			newTrade(day.Add(time.Hour), 20, withSymbol("GBPUSD")),
		)
	}

	if got := detectPairCorrelations(BuildTradeTable(trades)); len(got) != 0 {
		t.Errorf("корреляция при двух символах: %+v", got)
	}
}

func TestDetectConcentration(t *testing.T) {
	table := tableOf(
		newTrade(at(9, 0), 900, withSymbol("EURUSD")),
		newTrade(at(10, 0), 60, withSymbol("GBPUSD")),
		newTrade(at(11, 0), 40, withSymbol("USDJPY")),
	)

	insights := detectConcentration(table)
	if len(insights) != 1 {
		t.Fatalf("len = %d, want 1", len(insights))
	}

	ins := insights[0]
	if ins.Title != "Profit Concentration Risk: EURUSD" {
		t.Errorf("Title = %q", ins.Title)
	}
	if ins.Value != 0.9 {
		t.Errorf("Value = %v, want 0.9", ins.Value)
	}
}

func TestDetectConcentration_Diversified(t *testing.T) {
	table := tableOf(
		newTrade(at(9, 0), 400, withSymbol("EURUSD")),
		newTrade(at(10, 0), 300, withSymbol("GBPUSD")),
		newTrade(at(11, 0), 300, withSymbol("USDJPY")),
	)
	if got := detectConcentration(table); len(got) != 0 {
		t.Errorf("флаг на диверсифицированном портфеле: %+v", got)
	}
}

func TestDetectConcentration_NegativeTotal(t *testing.T) {
	table := tableOf(
		newTrade(at(9, 0), 100, withSymbol("EURUSD")),
		newTrade(at(10, 0), -200, withSymbol("GBPUSD")),
		newTrade(at(11, 0), -50, withSymbol("USDJPY")),
	)
	if got := detectConcentration(table); len(got) != 0 {
		t.Errorf("концентрация при отрицательной сумме: %+v", got)
	}
}

func TestDetectCapitalUtilization(t *testing.T) {
	var trades []*models.Trade
	// Двенадцать дней с разной эффективностью $/лот
	efficiencies := []float64{1000, 900, 850, 50, 40, 45, 55, 48, 52, -300, -350, -400}
	for i, e := range efficiencies {
		day := onDay(2024, time.January, 2+i, 10)
		trades = append(trades, newTrade(day, e*0.1, withVolume(0.1)))
	}

	insights := detectCapitalUtilization(BuildTradeTable(trades))
	if len(insights) != 1 {
		t.Fatalf("len = %d, want 1", len(insights))
	}
	if insights[0].Type != models.InsightCapitalEfficiency {
		t.Errorf("Type = %s", insights[0].Type)
	}
	if insights[0].Value <= 0 {
		t.Errorf("Value = %v, want > 0", insights[0].Value)
	}
}

func TestDetectCapitalUtilization_FewDays(t *testing.T) {
	var trades []*models.Trade
	for i := 0; i < 5; i++ {
		trades = append(trades, newTrade(onDay(2024, time.January, 2+i, 10), 10))
	}

	if got := detectCapitalUtilization(BuildTradeTable(trades)); len(got) != 0 {
		t.Errorf("инсайт на пяти днях: %+v", got)
	}
}

func TestDetectCompounding(t *testing.T) {
	var trades []*models.Trade
	start := onDay(2024, time.January, 1, 10)
	// 100 дней: первая половина по +10, вторая по +30
	for i := 0; i < 100; i++ {
		profit := 10.0
		if i >= 50 {
			profit = 30.0
		}
		trades = append(trades, newTrade(start.AddDate(0, 0, i), profit))
	}

	insights := detectCompounding(BuildTradeTable(trades))
	if len(insights) != 1 {
		t.Fatalf("len = %d, want 1", len(insights))
	}

	ins := insights[0]
	if ins.Type != models.InsightGrowthAcceleration {
		t.Errorf("Type = %s", ins.Type)
	}
	if ins.Value <= 0 {
		t.Errorf("Value = %v, want > 0", ins.Value)
	}
}

func TestDetectCompounding_ShortHistory(t *testing.T) {
	var trades []*models.Trade
	start := onDay(2024, time.January, 1, 10)
	for i := 0; i < 30; i++ {
		trades = append(trades, newTrade(start.AddDate(0, 0, i), float64(i)))
	}

	if got := detectCompounding(BuildTradeTable(trades)); len(got) != 0 {
		t.Errorf("compounding на месячной истории: %+v", got)
	}
}
