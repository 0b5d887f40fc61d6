package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"tradeinsight/pkg/utils"
)

// json - быстрый drop-in replacement для encoding/json.
// Ответы с инсайтами содержат десятки строковых полей,
// jsoniter заметно дешевле на таких структурах.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse стандартный формат ответа об ошибке для всех API endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse стандартный формат успешного ответа
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// writeJSON сериализует payload и отправляет его с указанным статусом
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError отправляет стандартный ответ об ошибке
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// accountIDFromRequest извлекает и валидирует идентификатор счета из URL.
// При невалидном идентификаторе отправляет 400 и возвращает false.
func accountIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID := mux.Vars(r)["id"]
	if err := utils.ValidateAccountID(accountID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id", err.Error())
		return "", false
	}
	return accountID, true
}
