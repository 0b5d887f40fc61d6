package utils

import (
	"errors"
	"regexp"
	"strings"
)

// validator.go - валидация входных данных API
//
// Назначение:
// Проверка корректности идентификаторов и символов до обращения к БД.
// Возвращает error с описанием проблемы или nil.

// Ошибки валидации
var (
	ErrEmptyAccountID   = errors.New("account id cannot be empty")
	ErrInvalidAccountID = errors.New("account id must be 1-64 letters, digits, dashes or underscores")
	ErrEmptySymbol      = errors.New("symbol cannot be empty")
	ErrInvalidSymbol    = errors.New("symbol must be 3-20 uppercase letters, digits or dots")
)

// accountIDRe - формат идентификатора счета, совпадает с форматом
// терминалов (номер счета, логин брокера, внутренний id)
var accountIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// symbolRe - формат торгового символа (EURUSD, XAUUSD, US30.cash)
var symbolRe = regexp.MustCompile(`^[A-Z0-9.]{3,20}$`)

// ValidateAccountID проверяет формат идентификатора счета
func ValidateAccountID(id string) error {
	if id == "" {
		return ErrEmptyAccountID
	}
	if !accountIDRe.MatchString(id) {
		return ErrInvalidAccountID
	}
	return nil
}

// ValidateSymbol проверяет формат торгового символа
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return ErrEmptySymbol
	}
	if !symbolRe.MatchString(strings.ToUpper(symbol)) {
		return ErrInvalidSymbol
	}
	return nil
}
