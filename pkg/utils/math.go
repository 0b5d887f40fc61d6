package utils

import (
	"math"
	"sort"
)

// math.go - статистические утилиты для аналитики сделок
//
// Назначение:
// Вспомогательные статистические функции для детекторов паттернов.
// Все функции являются чистыми (pure functions) без побочных эффектов.
// Вырожденные случаи (пустой ввод, нулевая дисперсия, деление на ноль)
// возвращают нейтральное значение вместо NaN/Inf.
//
// Функции:
// - Sum, Mean: сумма и среднее
// - StdDev: выборочное стандартное отклонение
// - Pearson: коэффициент корреляции Пирсона
// - Quantile: линейно интерполированный квантиль
// - WinRate: доля прибыльных значений
// - SharpeRatio: mean/stddev с защитой от нулевой дисперсии

// Sum возвращает сумму значений.
//
// Параметры:
//   - values: слайс значений
//
// Возвращает:
//   - Сумма всех элементов, 0 для пустого слайса
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean возвращает арифметическое среднее.
//
// Параметры:
//   - values: слайс значений
//
// Возвращает:
//   - Среднее значение
//   - 0 для пустого слайса (нейтральное значение, не NaN)
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// StdDev возвращает выборочное стандартное отклонение (n-1 в знаменателе).
//
// Формула:
//
//	s = sqrt(Σ(x_i - mean)² / (n-1))
//
// Параметры:
//   - values: слайс значений
//
// Возвращает:
//   - Выборочное стандартное отклонение
//   - 0 если n < 2 (stddev не определено, возвращаем нейтральное значение)
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(n-1))
}

// Pearson возвращает коэффициент корреляции Пирсона двух рядов.
//
// Формула:
//
//	r = Σ((x_i - mx)(y_i - my)) / sqrt(Σ(x_i - mx)² × Σ(y_i - my)²)
//
// Параметры:
//   - x, y: ряды одинаковой длины
//
// Возвращает:
//   - Коэффициент в диапазоне [-1, 1]
//   - 0 если длины не совпадают, n < 2 или один из рядов константный
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	mx := Mean(x)
	my := Mean(y)

	var sumXY, sumXX, sumYY float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		sumXY += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	// Константный ряд - корреляция не определена
	if sumXX == 0 || sumYY == 0 {
		return 0
	}

	return sumXY / math.Sqrt(sumXX*sumYY)
}

// Quantile возвращает q-квантиль ряда (линейная интерполяция).
//
// Параметры:
//   - values: слайс значений (не сортируется на месте - копируется)
//   - q: квантиль в диапазоне [0, 1] (0.5 = медиана)
//
// Возвращает:
//   - Значение квантиля
//   - 0 для пустого слайса
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) == 1 {
		return values[0]
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q = Clamp(q, 0, 1)
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))

	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// WinRate возвращает долю положительных значений в ряду.
//
// Параметры:
//   - values: слайс значений (net profit сделок)
//
// Возвращает:
//   - Доля значений > 0 в диапазоне [0, 1]
//   - 0 для пустого слайса
func WinRate(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	wins := 0
	for _, v := range values {
		if v > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(values))
}

// SharpeRatio возвращает отношение mean/stddev ряда.
//
// Используется для сравнения risk-adjusted доходности бакетов.
// Не аннуализируется - сравниваются только относительные величины.
//
// Параметры:
//   - values: слайс значений
//
// Возвращает:
//   - mean / stddev
//   - 0 при нулевой дисперсии или n < 2 (вместо Inf)
func SharpeRatio(values []float64) float64 {
	sd := StdDev(values)
	if sd == 0 {
		return 0
	}
	return Mean(values) / sd
}

// SafeRatio возвращает a/b с защитой от деления на ноль.
//
// Параметры:
//   - a: числитель
//   - b: знаменатель
//
// Возвращает:
//   - a/b, или 0 если b == 0 либо результат не конечен
func SafeRatio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	r := a / b
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0
	}
	return r
}

// CountDistinct возвращает количество различных значений в ряду.
func CountDistinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Abs возвращает абсолютное значение числа.
func Abs(x float64) float64 {
	return math.Abs(x)
}

// Min возвращает минимум из двух чисел.
func Min(a, b float64) float64 {
	return math.Min(a, b)
}

// Max возвращает максимум из двух чисел.
func Max(a, b float64) float64 {
	return math.Max(a, b)
}

// Clamp ограничивает значение диапазоном [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// IsFinite проверяет, что значение конечно (не NaN и не Inf).
//
// Контракт выходных данных: каждое поле value/confidence инсайта
// обязано быть конечным вещественным числом.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
