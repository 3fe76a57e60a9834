package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("insufficient_funds", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[insufficient_funds] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("storage_error", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[storage_error] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("storage_error", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("insufficient_funds", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestIntegrityErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"DuplicateEntry", ErrDuplicateEntry(), "duplicate_entry", 409},
		{"NegativeBalance", ErrNegativeBalance(), "negative_balance_prohibited", 409},
		{"PolicyRetroactive", ErrPolicyRetroactive(), "policy_retroactive_effective_from", 409},
		{"ChainBroken", ErrChainBroken("w-1"), "chain_broken", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestNotFoundErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"WalletNotFound", ErrWalletNotFound(), "wallet_not_found", 404},
		{"SubscriptionNotFound", ErrSubscriptionNotFound(), "subscription_not_found", 404},
		{"EngineNotFound", ErrEngineNotFound("karaoke"), "engine_not_found", 404},
		{"PolicyNotFound", ErrPolicyNotFound(), "policy_not_found", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestBusinessRuleErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientFunds", ErrInsufficientFunds(), "insufficient_funds", 402},
		{"SubscriptionNotActive", ErrSubscriptionNotActive(), "subscription_not_active", 409},
		{"PeriodAlreadyEnded", ErrPeriodAlreadyEnded(), "period_already_ended", 409},
		{"WalletClosed", ErrWalletClosed(), "wallet_closed", 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestEngineNotFound_MessageNamesEngine(t *testing.T) {
	err := ErrEngineNotFound("matchmaking")
	assert.Contains(t, err.Message, "matchmaking")
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "storage_error", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	intErr := InternalError(inner)
	assert.Equal(t, "internal_error", intErr.Code)
	assert.Equal(t, 500, intErr.HTTPStatus)
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "rate_limit_exceeded", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}
