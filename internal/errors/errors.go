// Package errors provides the application error taxonomy for the KasaTakip API.
// Services return *AppError values so handlers can render a stable code and
// message without leaking storage details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind groups error codes into the families callers react to.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "concurrency_conflict"
	KindAtomicUnit    Kind = "atomic_unit_failure"
	KindInternal      Kind = "internal"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Kind       Kind   `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so wrapped copies of a
// sentinel still match it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Kind:       sentinel.Kind,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Kind:       sentinel.Kind,
		Internal:   sentinel.Internal,
	}
}

// AtomicFailure reports a rolled back composite write. AppErrors raised inside
// the unit are returned untouched; anything else is wrapped and its cause is
// appended to the message for diagnostics.
func AtomicFailure(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Kind != KindInternal {
		return err
	}
	return &AppError{
		Code:       ErrAtomicUnitFailure.Code,
		Message:    ErrAtomicUnitFailure.Message + ": " + err.Error(),
		StatusCode: ErrAtomicUnitFailure.StatusCode,
		Kind:       KindAtomicUnit,
		Internal:   err,
	}
}

// KindOf returns the family of err, KindInternal for non-AppErrors.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func newErr(kind Kind, status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: status, Kind: kind}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = newErr(KindAuthorization, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	ErrInvalidCredentials = newErr(KindAuthorization, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	ErrForbidden          = newErr(KindAuthorization, http.StatusForbidden, "FORBIDDEN", "Access denied")
	ErrSafeAccessDenied   = newErr(KindAuthorization, http.StatusForbidden, "SAFE_ACCESS_DENIED", "You do not have access to this safe")
	ErrNotSafeOwner       = newErr(KindAuthorization, http.StatusForbidden, "NOT_SAFE_OWNER", "Only the owner of the safe can perform this action")
)

// General errors.
var (
	ErrInvalidInput      = newErr(KindValidation, http.StatusBadRequest, "INVALID_INPUT", "Invalid input")
	ErrNotFound          = newErr(KindNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer    = newErr(KindInternal, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	ErrConcurrency       = newErr(KindConflict, http.StatusConflict, "CONCURRENCY_CONFLICT", "The record was modified by another request; reload and try again")
	ErrAtomicUnitFailure = newErr(KindAtomicUnit, http.StatusInternalServerError, "ATOMIC_UNIT_FAILURE", "The operation was rolled back")
	ErrInvalidDateRange  = newErr(KindValidation, http.StatusBadRequest, "INVALID_DATE_RANGE", "Start date cannot be after end date")
)

// User errors.
var (
	ErrUserNotFound   = newErr(KindNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrDuplicateEmail = newErr(KindValidation, http.StatusConflict, "DUPLICATE_EMAIL", "A user with this email already exists")
)

// Currency errors.
var (
	ErrCurrencyNotFound = newErr(KindNotFound, http.StatusNotFound, "CURRENCY_NOT_FOUND", "Currency not found")
	ErrCurrencyInUse    = newErr(KindValidation, http.StatusConflict, "CURRENCY_IN_USE", "Currency is in use and cannot be deleted")
)

// Safe errors.
var (
	ErrSafeNotFound     = newErr(KindNotFound, http.StatusNotFound, "SAFE_NOT_FOUND", "Safe not found")
	ErrSafeInUse        = newErr(KindValidation, http.StatusConflict, "SAFE_IN_USE", "Safe is referenced by exchanges or salary payments")
	ErrNoAccessibleSafe = newErr(KindNotFound, http.StatusNotFound, "NO_ACCESSIBLE_SAFE", "No safe is available for this user")
)

// Safe authorization errors.
var (
	ErrGrantNotFound = newErr(KindNotFound, http.StatusNotFound, "GRANT_NOT_FOUND", "Authorization not found")
	ErrGrantExists   = newErr(KindValidation, http.StatusConflict, "GRANT_EXISTS", "This user is already authorized for the safe")
	ErrSelfGrant     = newErr(KindValidation, http.StatusBadRequest, "SELF_GRANT", "You cannot authorize yourself on your own safe")
)

// Transaction errors.
var (
	ErrTransactionNotFound    = newErr(KindNotFound, http.StatusNotFound, "TRANSACTION_NOT_FOUND", "Transaction not found")
	ErrInvalidTransactionType = newErr(KindValidation, http.StatusBadRequest, "INVALID_TRANSACTION_TYPE", "Unsupported transaction type")
	ErrInvalidAmount          = newErr(KindValidation, http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero")
)

// Currency exchange errors.
var (
	ErrExchangeNotFound         = newErr(KindNotFound, http.StatusNotFound, "EXCHANGE_NOT_FOUND", "Currency exchange not found")
	ErrSameCurrencyExchange     = newErr(KindValidation, http.StatusBadRequest, "SAME_CURRENCY_EXCHANGE", "Sold and bought currencies must differ")
	ErrUnsupportedAccountSource = newErr(KindValidation, http.StatusBadRequest, "UNSUPPORTED_ACCOUNT_SOURCE", "Only cash exchanges against the main safe are supported")
)

// Counterparty, employee and salary errors.
var (
	ErrCurrentAccountNotFound = newErr(KindNotFound, http.StatusNotFound, "CURRENT_ACCOUNT_NOT_FOUND", "Current account not found")
	ErrCurrentAccountInUse    = newErr(KindValidation, http.StatusConflict, "CURRENT_ACCOUNT_IN_USE", "Current account has transactions and cannot be deleted")
	ErrEmployeeNotFound       = newErr(KindNotFound, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found")
	ErrSalaryPaymentNotFound  = newErr(KindNotFound, http.StatusNotFound, "SALARY_PAYMENT_NOT_FOUND", "Salary payment not found")
)

// Bank errors.
var (
	ErrBankNotFound        = newErr(KindNotFound, http.StatusNotFound, "BANK_NOT_FOUND", "Bank not found")
	ErrBankInUse           = newErr(KindValidation, http.StatusConflict, "BANK_IN_USE", "Bank has accounts and cannot be deleted")
	ErrBankAccountNotFound = newErr(KindNotFound, http.StatusNotFound, "BANK_ACCOUNT_NOT_FOUND", "Bank account not found")
)
