package utils

import (
	"strings"
	"testing"
)

func TestValidateAccountID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"numeric login", "1042573", nil},
		{"uuid", "a3f1c2d4-5678-4abc-9def-112233445566", nil},
		{"internal id", "acc_main-01", nil},
		{"empty", "", ErrEmptyAccountID},
		{"too long", strings.Repeat("a", 65), ErrInvalidAccountID},
		{"spaces", "acc 1", ErrInvalidAccountID},
		{"sql injection attempt", "'; DROP TABLE trades; --", ErrInvalidAccountID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountID(tt.id)
			if err != tt.wantErr {
				t.Errorf("ValidateAccountID(%q) = %v, expected %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		wantErr error
	}{
		{"forex pair", "EURUSD", nil},
		{"metal", "XAUUSD", nil},
		{"index with dot", "US30.CASH", nil},
		{"lowercase normalized", "eurusd", nil},
		{"empty", "", ErrEmptySymbol},
		{"too short", "EU", ErrInvalidSymbol},
		{"spaces", "EUR USD", ErrInvalidSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbol(tt.symbol)
			if err != tt.wantErr {
				t.Errorf("ValidateSymbol(%q) = %v, expected %v", tt.symbol, err, tt.wantErr)
			}
		})
	}
}
