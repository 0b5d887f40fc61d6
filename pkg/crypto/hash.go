package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Ошибки хеширования API ключей
var (
	ErrEmptyKey    = errors.New("api key cannot be empty")
	ErrKeyMismatch = errors.New("api key does not match hash")
	ErrInvalidHash = errors.New("invalid api key hash format")
	ErrKeyTooLong  = errors.New("api key exceeds maximum length of 72 bytes")
)

// DefaultCost - стоимость bcrypt для API_KEY_HASH.
// Ключ проверяется на каждом запросе к /api/v1, поэтому выше 12
// поднимать не стоит: задержка аутентификации станет заметнее
// самого анализа.
const DefaultCost = 12

// MaxKeyLength - ограничение bcrypt на длину входа (72 байта)
const MaxKeyLength = 72

// HashKey хеширует API ключ для записи в API_KEY_HASH.
// Salt генерируется автоматически, хеш каждый раз разный.
func HashKey(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	// bcrypt ограничен 72 байтами
	if len(key) > MaxKeyLength {
		return "", ErrKeyTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// HashKeyWithCost хеширует ключ с указанной стоимостью
// cost должен быть от bcrypt.MinCost (4) до bcrypt.MaxCost (31)
func HashKeyWithCost(key string, cost int) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	if len(key) > MaxKeyLength {
		return "", ErrKeyTooLong
	}

	// Валидация cost
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyKey проверяет соответствие ключа хешу
// Использует constant-time comparison для защиты от timing attacks
func VerifyKey(key, hash string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if hash == "" {
		return ErrInvalidHash
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrKeyMismatch
		}
		// Невалидный формат хеша или другая ошибка
		return ErrInvalidHash
	}

	return nil
}

// CheckKeyMatch проверяет соответствие ключа хешу и возвращает bool
// Удобная обёртка для middleware аутентификации
func CheckKeyMatch(key, hash string) bool {
	return VerifyKey(key, hash) == nil
}

// GetHashCost извлекает cost из существующего хеша
// Полезно для определения необходимости перехеширования при увеличении cost
func GetHashCost(hash string) (int, error) {
	if hash == "" {
		return 0, ErrInvalidHash
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return 0, ErrInvalidHash
	}

	return cost, nil
}

// NeedsRehash проверяет, нужно ли перевыпустить хеш ключа
// Возвращает true если текущий cost хеша меньше желаемого
func NeedsRehash(hash string, desiredCost int) bool {
	currentCost, err := GetHashCost(hash)
	if err != nil {
		return true // При ошибке лучше перехешировать
	}
	return currentCost < desiredCost
}
