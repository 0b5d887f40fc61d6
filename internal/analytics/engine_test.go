package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"tradeinsight/internal/models"
)

// ============================================================
// Тесты движка обнаружения инсайтов
// ============================================================

func TestEngine_EmptyInput(t *testing.T) {
	engine := NewEngine(true)

	insights := engine.DiscoverInsights(nil)
	if insights == nil {
		t.Fatal("DiscoverInsights(nil) = nil, want пустой слайс")
	}
	if len(insights) != 0 {
		t.Errorf("DiscoverInsights(nil) вернул %d инсайтов", len(insights))
	}
}

// richHistory строит историю, срабатывающую на несколько детекторов:
// прибыльное утро, убыточный день, длинная серия убытков.
func richHistory() []*models.Trade {
	var trades []*models.Trade

	day := onDay(2024, time.January, 8, 0) // понедельник
	for week := 0; week < 4; week++ {
		for d := 0; d < 5; d++ {
			base := day.AddDate(0, 0, week*7+d)
			// Прибыльные утренние часы
			trades = append(trades,
				newTrade(base.Add(9*time.Hour), 80),
				newTrade(base.Add(10*time.Hour), 60),
			)
			// Убыточный вечерний час
			trades = append(trades, newTrade(base.Add(19*time.Hour), -40))
		}
	}

	// Серия из шести убытков подряд в конце истории
	tail := day.AddDate(0, 0, 30)
	for i := 0; i < 6; i++ {
		trades = append(trades, newTrade(tail.Add(time.Duration(i)*time.Hour), -30))
	}

	return trades
}

func TestEngine_TopLimit(t *testing.T) {
	engine := NewEngine(false)
	insights := engine.DiscoverInsights(richHistory())

	if len(insights) == 0 {
		t.Fatal("нет инсайтов на богатой истории")
	}
	if len(insights) > MaxInsights {
		t.Errorf("вернулось %d инсайтов, максимум %d", len(insights), MaxInsights)
	}
}

func TestEngine_RankingOrder(t *testing.T) {
	engine := NewEngine(false)
	insights := engine.DiscoverInsights(richHistory())

	for i := 1; i < len(insights); i++ {
		prev := insights[i-1].Confidence * math.Abs(insights[i-1].Value)
		cur := insights[i].Confidence * math.Abs(insights[i].Value)
		if cur > prev {
			t.Fatalf("нарушен порядок важности: позиция %d (%.4f) > позиция %d (%.4f)",
				i, cur, i-1, prev)
		}
	}
}

func TestEngine_ConfidenceBounds(t *testing.T) {
	engine := NewEngine(false)

	for _, ins := range engine.DiscoverInsights(richHistory()) {
		if ins.Confidence < 0 || ins.Confidence > 1 {
			t.Errorf("%s: Confidence = %v вне [0, 1]", ins.Type, ins.Confidence)
		}
		if math.IsNaN(ins.Value) || math.IsInf(ins.Value, 0) {
			t.Errorf("%s: Value = %v не конечен", ins.Type, ins.Value)
		}
	}
}

func TestEngine_Idempotent(t *testing.T) {
	trades := richHistory()

	parallel := NewEngine(true)
	sequential := NewEngine(false)

	first := parallel.DiscoverInsights(trades)
	second := parallel.DiscoverInsights(trades)
	serial := sequential.DiscoverInsights(trades)

	if !reflect.DeepEqual(first, second) {
		t.Error("повторный запуск дал другой результат")
	}
	if !reflect.DeepEqual(first, serial) {
		t.Error("параллельный и последовательный режимы разошлись")
	}
}

func TestEngine_PanicIsolation(t *testing.T) {
	engine := &Engine{
		Parallel:    true,
		MaxInsights: MaxInsights,
		registry: []registeredDetector{
			{"panicking", func(*TradeTable) []models.Insight {
				panic("детектор сломан")
			}},
			{"working", func(*TradeTable) []models.Insight {
				return []models.Insight{{Type: "test", Value: 1, Confidence: 0.5}}
			}},
		},
	}

	insights := engine.DiscoverInsights([]*models.Trade{newTrade(at(9, 0), 10)})
	if len(insights) != 1 || insights[0].Type != "test" {
		t.Fatalf("паника одного детектора затронула остальные: %+v", insights)
	}
}

func TestSanitizeInsight(t *testing.T) {
	tests := []struct {
		name           string
		in             models.Insight
		wantValue      float64
		wantConfidence float64
	}{
		{"валидный", models.Insight{Value: 10, Confidence: 0.5}, 10, 0.5},
		{"NaN value", models.Insight{Value: math.NaN(), Confidence: 0.5}, 0, 0.5},
		{"Inf value", models.Insight{Value: math.Inf(1), Confidence: 0.5}, 0, 0.5},
		{"confidence выше 1", models.Insight{Value: 1, Confidence: 1.5}, 1, 1},
		{"отрицательная confidence", models.Insight{Value: 1, Confidence: -0.1}, 1, 0},
		{"NaN confidence", models.Insight{Value: 1, Confidence: math.NaN()}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeInsight(tt.in)
			if got.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", got.Value, tt.wantValue)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestDetectorRegistry_Complete(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range detectorRegistry {
		if d.Name == "" || d.Fn == nil {
			t.Fatalf("неполная запись реестра: %+v", d)
		}
		if seen[d.Name] {
			t.Fatalf("дубликат детектора %s", d.Name)
		}
		seen[d.Name] = true
	}
	if len(detectorRegistry) != 23 {
		t.Errorf("в реестре %d детекторов, want 23", len(detectorRegistry))
	}
}
