package models

import "time"

// Trade представляет одну историческую сделку торгового счета (MT4/MT5)
type Trade struct {
	ID         int        `json:"id" db:"id"`
	AccountID  string     `json:"account_id" db:"account_id"`
	Ticket     *int64     `json:"ticket,omitempty" db:"ticket"`             // номер тикета MT4/MT5
	Position   *int64     `json:"position,omitempty" db:"position"`         // ID позиции
	MagicNum   *int64     `json:"magic_number,omitempty" db:"magic_number"` // идентификатор EA/алгоритма
	Symbol     string     `json:"symbol" db:"symbol"`                       // EURUSD
	Type       string     `json:"type" db:"type"`                           // buy, sell
	Volume     float64    `json:"volume" db:"volume"`                       // объем в лотах
	OpenPrice  float64    `json:"open_price" db:"open_price"`
	ClosePrice *float64   `json:"close_price,omitempty" db:"close_price"`   // nil = позиция открыта
	StopLoss   *float64   `json:"stop_loss,omitempty" db:"stop_loss"`
	TakeProfit *float64   `json:"take_profit,omitempty" db:"take_profit"`
	Profit     float64    `json:"profit" db:"profit"`
	Commission float64    `json:"commission" db:"commission"`
	Swap       float64    `json:"swap" db:"swap"`
	OpenTime   time.Time  `json:"open_time" db:"open_time"`
	CloseTime  *time.Time `json:"close_time,omitempty" db:"close_time"`     // nil = позиция открыта
	Comment    string     `json:"comment,omitempty" db:"comment"`
}

// Направления сделки
const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// NetProfit возвращает чистую прибыль сделки (profit + commission + swap).
// Commission и swap обычно отрицательные, поэтому складываются.
func (t *Trade) NetProfit() float64 {
	return t.Profit + t.Commission + t.Swap
}

// IsClosed проверяет, закрыта ли сделка
func (t *Trade) IsClosed() bool {
	return t.CloseTime != nil
}
