package repository

import (
	"database/sql"
	"errors"
	"time"

	"tradeinsight/internal/models"
)

// Ошибки репозитория сделок
var (
	ErrTradeNotFound = errors.New("trade not found")
)

// TradeRepository - работа с таблицей trades
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository создает новый экземпляр репозитория
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// tradeColumns - единый список колонок для SELECT запросов
const tradeColumns = `id, account_id, ticket, position, magic_number, symbol, type, volume,
	open_price, close_price, stop_loss, take_profit, profit, commission, swap,
	open_time, close_time, comment`

// Create создает запись о сделке
func (r *TradeRepository) Create(trade *models.Trade) error {
	query := `
		INSERT INTO trades (account_id, ticket, position, magic_number, symbol, type, volume,
			open_price, close_price, stop_loss, take_profit, profit, commission, swap,
			open_time, close_time, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`

	err := r.db.QueryRow(
		query,
		trade.AccountID,
		trade.Ticket,
		trade.Position,
		trade.MagicNum,
		trade.Symbol,
		trade.Type,
		trade.Volume,
		trade.OpenPrice,
		trade.ClosePrice,
		trade.StopLoss,
		trade.TakeProfit,
		trade.Profit,
		trade.Commission,
		trade.Swap,
		trade.OpenTime,
		trade.CloseTime,
		trade.Comment,
	).Scan(&trade.ID)

	if err != nil {
		return err
	}

	return nil
}

// GetByID возвращает сделку по ID
func (r *TradeRepository) GetByID(id int) (*models.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE id = $1`

	trade := &models.Trade{}
	err := r.db.QueryRow(query, id).Scan(
		&trade.ID,
		&trade.AccountID,
		&trade.Ticket,
		&trade.Position,
		&trade.MagicNum,
		&trade.Symbol,
		&trade.Type,
		&trade.Volume,
		&trade.OpenPrice,
		&trade.ClosePrice,
		&trade.StopLoss,
		&trade.TakeProfit,
		&trade.Profit,
		&trade.Commission,
		&trade.Swap,
		&trade.OpenTime,
		&trade.CloseTime,
		&trade.Comment,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTradeNotFound
		}
		return nil, err
	}

	return trade, nil
}

// GetByAccountID возвращает все сделки счета в хронологическом порядке.
// Порядок по open_time важен: детекторы серий и compounding анализа
// полагаются на него.
func (r *TradeRepository) GetByAccountID(accountID string) ([]*models.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE account_id = $1
		ORDER BY open_time ASC`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		trade := &models.Trade{}
		err := rows.Scan(
			&trade.ID,
			&trade.AccountID,
			&trade.Ticket,
			&trade.Position,
			&trade.MagicNum,
			&trade.Symbol,
			&trade.Type,
			&trade.Volume,
			&trade.OpenPrice,
			&trade.ClosePrice,
			&trade.StopLoss,
			&trade.TakeProfit,
			&trade.Profit,
			&trade.Commission,
			&trade.Swap,
			&trade.OpenTime,
			&trade.CloseTime,
			&trade.Comment,
		)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trades, nil
}

// GetByAccountIDInTimeRange возвращает сделки счета за период
func (r *TradeRepository) GetByAccountIDInTimeRange(accountID string, from, to time.Time) ([]*models.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE account_id = $1 AND open_time >= $2 AND open_time <= $3
		ORDER BY open_time ASC`

	rows, err := r.db.Query(query, accountID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		trade := &models.Trade{}
		err := rows.Scan(
			&trade.ID,
			&trade.AccountID,
			&trade.Ticket,
			&trade.Position,
			&trade.MagicNum,
			&trade.Symbol,
			&trade.Type,
			&trade.Volume,
			&trade.OpenPrice,
			&trade.ClosePrice,
			&trade.StopLoss,
			&trade.TakeProfit,
			&trade.Profit,
			&trade.Commission,
			&trade.Swap,
			&trade.OpenTime,
			&trade.CloseTime,
			&trade.Comment,
		)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trades, nil
}

// CountByAccountID возвращает количество сделок счета
func (r *TradeRepository) CountByAccountID(accountID string) (int, error) {
	query := `SELECT COUNT(*) FROM trades WHERE account_id = $1`

	var count int
	err := r.db.QueryRow(query, accountID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DistinctSymbols возвращает отсортированный список символов счета
func (r *TradeRepository) DistinctSymbols(accountID string) ([]string, error) {
	query := `
		SELECT DISTINCT symbol
		FROM trades
		WHERE account_id = $1
		ORDER BY symbol ASC`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return symbols, nil
}

// DeleteByAccountID удаляет все сделки счета, возвращает количество
func (r *TradeRepository) DeleteByAccountID(accountID string) (int64, error) {
	query := `DELETE FROM trades WHERE account_id = $1`

	result, err := r.db.Exec(query, accountID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// Delete удаляет сделку по ID
func (r *TradeRepository) Delete(id int) error {
	query := `DELETE FROM trades WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTradeNotFound
	}

	return nil
}
