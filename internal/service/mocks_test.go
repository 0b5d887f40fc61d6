package service

import (
	"sort"

	"tradeinsight/internal/models"
)

// ============ Mock TradeRepository ============

type MockTradeRepository struct {
	trades map[string][]*models.Trade
	getErr error
}

func NewMockTradeRepository() *MockTradeRepository {
	return &MockTradeRepository{
		trades: make(map[string][]*models.Trade),
	}
}

func (m *MockTradeRepository) Add(accountID string, trades ...*models.Trade) {
	m.trades[accountID] = append(m.trades[accountID], trades...)
}

func (m *MockTradeRepository) GetByAccountID(accountID string) ([]*models.Trade, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.trades[accountID], nil
}

func (m *MockTradeRepository) CountByAccountID(accountID string) (int, error) {
	if m.getErr != nil {
		return 0, m.getErr
	}
	return len(m.trades[accountID]), nil
}

func (m *MockTradeRepository) DistinctSymbols(accountID string) ([]string, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	seen := make(map[string]bool)
	var symbols []string
	for _, tr := range m.trades[accountID] {
		if !seen[tr.Symbol] {
			seen[tr.Symbol] = true
			symbols = append(symbols, tr.Symbol)
		}
	}
	sort.Strings(symbols)
	return symbols, nil
}

// ============ Mock InsightBroadcaster ============

type MockBroadcaster struct {
	accountIDs []string
	lastCount  int
}

func (m *MockBroadcaster) BroadcastInsightsUpdate(accountID string, insights []models.Insight) {
	m.accountIDs = append(m.accountIDs, accountID)
	m.lastCount = len(insights)
}
