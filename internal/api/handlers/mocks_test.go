package handlers

import (
	"errors"

	"tradeinsight/internal/models"
)

// ErrMockDatabase - ошибка уровня хранилища для тестов handlers
var ErrMockDatabase = errors.New("mock database error")

// ============ Mock InsightService ============

type MockInsightService struct {
	insights      []models.Insight
	basicInsights []models.Insight
	metrics       *models.AccountMetrics
	timeAnalysis  *models.TimeAnalysis
	pairs         []models.SymbolStat
	hourlyHeatmap *models.Heatmap
	dailyHeatmap  *models.Heatmap

	err error

	// lastAccountID фиксирует, какой счет запрашивался
	lastAccountID string
}

func NewMockInsightService() *MockInsightService {
	return &MockInsightService{
		metrics:       &models.AccountMetrics{},
		timeAnalysis:  &models.TimeAnalysis{Hourly: []models.HourStat{}, Daily: []models.DayStat{}},
		hourlyHeatmap: &models.Heatmap{Data: []models.HourStat{}},
		dailyHeatmap:  &models.Heatmap{Data: []models.DayStat{}},
	}
}

func (m *MockInsightService) SetError(err error) {
	m.err = err
}

func (m *MockInsightService) DiscoverInsights(accountID string) ([]models.Insight, error) {
	m.lastAccountID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.insights, nil
}

func (m *MockInsightService) DetectBasicInsights(accountID string) ([]models.Insight, error) {
	m.lastAccountID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.basicInsights, nil
}

func (m *MockInsightService) GetAccountMetrics(accountID string) (*models.AccountMetrics, error) {
	m.lastAccountID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.metrics, nil
}

func (m *MockInsightService) GetTimeAnalysis(accountID string) (*models.TimeAnalysis, error) {
	m.lastAccountID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.timeAnalysis, nil
}

func (m *MockInsightService) GetPairAnalysis(accountID string) ([]models.SymbolStat, error) {
	m.lastAccountID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.pairs, nil
}

func (m *MockInsightService) GetHourlyHeatmap(accountID string) (*models.Heatmap, error) {
	m.lastAccountID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.hourlyHeatmap, nil
}

func (m *MockInsightService) GetDailyHeatmap(accountID string) (*models.Heatmap, error) {
	m.lastAccountID = accountID
	if m.err != nil {
		return nil, m.err
	}
	return m.dailyHeatmap, nil
}
