package utils

import (
	"fmt"
	"time"
)

// time.go - календарные утилиты для аналитики сделок
//
// Назначение:
// Вспомогательные функции для временной бакетизации сделок.
// Все расчеты выполняются по naive wall-clock семантике: время
// берется как хранится, без конвертации таймзон (так же хранит
// его терминал MT4/MT5 при выгрузке истории).
//
// Инвариант нумерации дней недели: Понедельник = 0 ... Воскресенье = 6.
// Этот инвариант зафиксирован на все время жизни системы - на него
// опирается каждый детектор, работающий с днями недели.

// Индексы дней недели (Понедельник = 0)
const (
	DayMonday = iota
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DaySaturday
	DaySunday
)

// dayNamesShort - короткие имена дней для теплокарт и отчетов
var dayNamesShort = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// dayNamesFull - полные имена дней для текстов инсайтов
var dayNamesFull = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex возвращает индекс дня недели с Понедельником = 0.
//
// time.Weekday в Go нумерует с воскресенья (Sunday = 0),
// поэтому выполняется сдвиг: (weekday + 6) % 7.
//
// Примеры:
//   - Понедельник -> 0
//   - Пятница -> 4
//   - Воскресенье -> 6
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekendDay проверяет, является ли индекс дня выходным (суббота/воскресенье)
func IsWeekendDay(dayIndex int) bool {
	return dayIndex == DaySaturday || dayIndex == DaySunday
}

// DayNameShort возвращает короткое имя дня по индексу (Mon..Sun).
// Для индекса вне [0, 6] возвращает пустую строку.
func DayNameShort(dayIndex int) string {
	if dayIndex < 0 || dayIndex > 6 {
		return ""
	}
	return dayNamesShort[dayIndex]
}

// DayNameFull возвращает полное имя дня по индексу (Monday..Sunday).
// Для индекса вне [0, 6] возвращает пустую строку.
func DayNameFull(dayIndex int) string {
	if dayIndex < 0 || dayIndex > 6 {
		return ""
	}
	return dayNamesFull[dayIndex]
}

// MonthNameShort возвращает короткое имя месяца (Jan..Dec) для номера 1-12.
// Для номера вне диапазона возвращает пустую строку.
func MonthNameShort(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()[:3]
}

// DateKey возвращает календарный день как строку YYYY-MM-DD.
//
// Используется как ключ группировки при дневной агрегации
// (дневная прибыль, дневной объем, частота сделок).
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// WeekKey возвращает ISO-неделю как строку YYYY-WW.
//
// Используется как ключ группировки при недельной агрегации.
// ISO-неделя начинается с понедельника, что согласуется с
// инвариантом нумерации дней.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-%02d", year, week)
}

// WeekOfYear возвращает номер ISO-недели (1-53)
func WeekOfYear(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// DurationHours возвращает длительность между двумя моментами в часах.
//
// Параметры:
//   - open: время открытия
//   - close: время закрытия (nil = позиция не закрыта)
//
// Возвращает:
//   - Указатель на длительность в часах, nil если close == nil
func DurationHours(open time.Time, close *time.Time) *float64 {
	if close == nil {
		return nil
	}
	hours := close.Sub(open).Hours()
	return &hours
}

// DaysBetween возвращает количество полных суток между двумя моментами
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
