package middleware

import (
	"net/http"
	"strings"

	"tradeinsight/pkg/ratelimit"
)

// Категории запросов с отдельными ведрами токенов
const (
	categoryAnalysis = "analysis"
	categoryReports  = "reports"
)

// reportsRateFactor - во сколько раз лимит отчетов выше лимита анализа.
// Чтение готового профиля на порядки дешевле прогона детекторов.
const reportsRateFactor = 4

// requestCategory относит запрос к ведру по пути.
// Endpoints инсайтов запускают полный прогон детекторов,
// все остальное - чтение агрегатов.
func requestCategory(path string) string {
	if strings.Contains(path, "/insights") {
		return categoryAnalysis
	}
	return categoryReports
}

// RateLimit - middleware для ограничения частоты запросов
//
// Назначение:
// Защищает сервер от перегрузки частыми запросами на анализ.
// Полный прогон детекторов на большой истории заметно нагружает CPU,
// поэтому запросы сверх лимита отклоняются сразу.
//
// Алгоритм:
// MultiLimiter с двумя ведрами: endpoints анализа получают rps в секунду,
// endpoints отчетов (метрики, профили, теплокарты) - в reportsRateFactor
// раз больше. Шквал дешевых запросов дашборда не блокирует анализ,
// а серия запусков анализа не блокирует дашборд.
// Запрос без доступного токена получает 429 Too Many Requests.
//
// rps <= 0 отключает ограничение.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := ratelimit.NewMultiLimiter()
	limiter.Add(categoryAnalysis, float64(rps), float64(rps*2))
	limiter.Add(categoryReports, float64(rps*reportsRateFactor), float64(rps*reportsRateFactor*2))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(requestCategory(r.URL.Path)) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
