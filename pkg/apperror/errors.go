package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
// Code carries the machine-readable reason string surfaced to clients.
type AppError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Integrity violations (always fatal to the operation) ----

func ErrDuplicateEntry() *AppError {
	return New("duplicate_entry", "Ledger entry with the same id or hash already exists", http.StatusConflict)
}

func ErrNegativeBalance() *AppError {
	return New("negative_balance_prohibited", "Operation would drive wallet balance below zero", http.StatusConflict)
}

func ErrPolicyRetroactive() *AppError {
	return New("policy_retroactive_effective_from", "A later-effective policy already exists for this scope", http.StatusConflict)
}

func ErrChainBroken(walletID string) *AppError {
	return New("chain_broken", fmt.Sprintf("Hash chain verification failed for wallet %s", walletID), http.StatusConflict)
}

// ---- Resource not found ----

func ErrWalletNotFound() *AppError {
	return New("wallet_not_found", "Wallet not found", http.StatusNotFound)
}

func ErrSubscriptionNotFound() *AppError {
	return New("subscription_not_found", "Subscription not found", http.StatusNotFound)
}

func ErrEngineNotFound(engine string) *AppError {
	return New("engine_not_found", fmt.Sprintf("No activity engine registered for %q", engine), http.StatusNotFound)
}

func ErrPolicyNotFound() *AppError {
	return New("policy_not_found", "Policy not found", http.StatusNotFound)
}

// ---- Business-rule rejections ----

func ErrInsufficientFunds() *AppError {
	return New("insufficient_funds", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrSubscriptionNotActive() *AppError {
	return New("subscription_not_active", "Subscription is not in an active state", http.StatusConflict)
}

func ErrPeriodAlreadyEnded() *AppError {
	return New("period_already_ended", "Billing period has already ended", http.StatusConflict)
}

func ErrWalletClosed() *AppError {
	return New("wallet_closed", "Wallet is closed and can no longer be used", http.StatusConflict)
}

// ---- Validation ----

func ErrInvalidSignature() *AppError {
	return New("invalid_signature", "Policy signature verification failed", http.StatusBadRequest)
}

func ErrInvalidPayload(reason string) *AppError {
	return New("invalid_policy_payload", reason, http.StatusBadRequest)
}

// Validation returns a generic bad-request validation error.
func Validation(message string) *AppError {
	return New("validation_error", message, http.StatusBadRequest)
}

// ---- System & infrastructure ----

// InternalError wraps an internal error.
func InternalError(err error) *AppError {
	return Wrap("internal_error", "Internal server error", http.StatusInternalServerError, err)
}

// ErrDatabaseError wraps a storage-layer failure.
func ErrDatabaseError(err error) *AppError {
	return Wrap("storage_error", "Internal storage error", http.StatusInternalServerError, err)
}

// ---- Rate limiting ----

func ErrRateLimitExceeded() *AppError {
	return New("rate_limit_exceeded", "Rate limit exceeded", http.StatusTooManyRequests)
}
