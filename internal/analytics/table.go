package analytics

import (
	"sort"
	"time"

	"tradeinsight/internal/models"
	"tradeinsight/pkg/utils"
)

// table.go - построение таблицы сделок с вычисляемыми признаками
//
// Назначение:
// Превращает сырые записи сделок одного счета в плоскую таблицу
// (одна строка на сделку) с производными колонками, на которой
// работают все детекторы. Таблица строится один раз и после этого
// только читается - детекторы никогда ее не мутируют.
//
// Производные поля:
// - NetProfit = profit + commission + swap
// - IsProfitable = NetProfit > 0
// - DurationHours = (close_time - open_time) в часах, nil для открытых
// - HourOpened, DayOfWeek (Понедельник=0), Month, WeekOfYear
// - IsWeekend = день недели ∈ {суббота, воскресенье}
//
// Все временные расчеты используют naive wall-clock семантику:
// время интерпретируется как хранится, без конвертации таймзон.

// TradeRow - одна строка таблицы: сделка плюс производные признаки
type TradeRow struct {
	Symbol     string
	Type       string
	Volume     float64
	OpenPrice  float64
	ClosePrice *float64
	StopLoss   *float64
	TakeProfit *float64
	OpenTime   time.Time
	CloseTime  *time.Time

	// Производные признаки
	NetProfit     float64
	IsProfitable  bool
	DurationHours *float64 // nil = позиция не закрыта
	HourOpened    int
	DayOfWeek     int // Понедельник = 0
	Month         int // 1-12
	WeekOfYear    int
	IsWeekend     bool
}

// TradeTable - неизменяемая таблица сделок одного счета.
//
// Строки хранятся в порядке, возвращенном хранилищем.
// Детекторы, которым важна хронология, используют SortedByOpenTime.
type TradeTable struct {
	rows []TradeRow
}

// BuildTradeTable строит таблицу из сырых записей сделок.
//
// Чистая функция: не обращается к БД, вход не мутирует.
// Пустой вход дает пустую таблицу - это штатный случай,
// downstream компоненты трактуют его как "нет инсайтов".
func BuildTradeTable(trades []*models.Trade) *TradeTable {
	if len(trades) == 0 {
		return &TradeTable{}
	}

	rows := make([]TradeRow, 0, len(trades))
	for _, t := range trades {
		net := t.NetProfit()
		row := TradeRow{
			Symbol:        t.Symbol,
			Type:          t.Type,
			Volume:        t.Volume,
			OpenPrice:     t.OpenPrice,
			ClosePrice:    t.ClosePrice,
			StopLoss:      t.StopLoss,
			TakeProfit:    t.TakeProfit,
			OpenTime:      t.OpenTime,
			CloseTime:     t.CloseTime,
			NetProfit:     net,
			IsProfitable:  net > 0,
			DurationHours: utils.DurationHours(t.OpenTime, t.CloseTime),
			HourOpened:    t.OpenTime.Hour(),
			DayOfWeek:     utils.WeekdayIndex(t.OpenTime),
			Month:         int(t.OpenTime.Month()),
			WeekOfYear:    utils.WeekOfYear(t.OpenTime),
		}
		row.IsWeekend = utils.IsWeekendDay(row.DayOfWeek)
		rows = append(rows, row)
	}

	return &TradeTable{rows: rows}
}

// Len возвращает количество строк таблицы
func (t *TradeTable) Len() int {
	return len(t.rows)
}

// IsEmpty проверяет отсутствие сделок
func (t *TradeTable) IsEmpty() bool {
	return len(t.rows) == 0
}

// Rows возвращает строки таблицы.
//
// Слайс разделяется между всеми детекторами только на чтение -
// контракт детектора запрещает мутацию.
func (t *TradeTable) Rows() []TradeRow {
	return t.rows
}

// SortedByOpenTime возвращает НОВЫЙ слайс строк в хронологическом порядке.
//
// Исходная таблица не меняется.
func (t *TradeTable) SortedByOpenTime() []TradeRow {
	sorted := make([]TradeRow, len(t.rows))
	copy(sorted, t.rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OpenTime.Before(sorted[j].OpenTime)
	})
	return sorted
}

// NetProfits возвращает чистую прибыль каждой строки
func (t *TradeTable) NetProfits() []float64 {
	profits := make([]float64, len(t.rows))
	for i, row := range t.rows {
		profits[i] = row.NetProfit
	}
	return profits
}

// Symbols возвращает отсортированный список различных символов таблицы
func (t *TradeTable) Symbols() []string {
	seen := make(map[string]struct{})
	for _, row := range t.rows {
		seen[row.Symbol] = struct{}{}
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Filter возвращает строки, удовлетворяющие предикату
func (t *TradeTable) Filter(pred func(TradeRow) bool) []TradeRow {
	return filterRows(t.rows, pred)
}
