package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

// Recovery - middleware для восстановления после паники в handlers
//
// Детекторы защищены собственным recover внутри analytics, но паника
// в handler, сериализации или другом middleware уронила бы весь сервер
// вместе с открытыми WebSocket соединениями. Перехватываем ее здесь,
// логируем stack trace и отвечаем клиенту 500.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v (%s %s)\n", err, r.Method, r.URL.Path)
				log.Printf("Stack trace:\n%s", debug.Stack())

				http.Error(
					w,
					fmt.Sprintf("Internal Server Error: %v", err),
					http.StatusInternalServerError,
				)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
