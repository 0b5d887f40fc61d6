package middleware

import (
	"net/http"

	"tradeinsight/pkg/crypto"
)

// APIKeyAuth - middleware для проверки API ключа
//
// Назначение:
// Защищает API endpoints от неавторизованного доступа.
// Клиент передает ключ в заголовке X-API-Key, сервер сравнивает его
// с bcrypt-хешем из конфигурации (API_KEY_HASH).
//
// Безопасность:
// - В конфигурации хранится только хеш, сам ключ сервер не знает
// - bcrypt сравнение устойчиво к timing attacks
// - Пустой хеш отключает проверку (только для локального развертывания)
//
// Использование:
//
//	api := router.PathPrefix("/api/v1").Subrouter()
//	api.Use(middleware.APIKeyAuth(cfg.Security.APIKeyHash))
func APIKeyAuth(apiKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Проверка отключена - пропускаем все запросы
			if apiKeyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				http.Error(w, "Missing API key", http.StatusUnauthorized)
				return
			}

			if !crypto.CheckKeyMatch(key, apiKeyHash) {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
