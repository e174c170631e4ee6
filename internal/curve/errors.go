// =============================
// File: internal/curve/errors.go
// =============================
package curve

import "errors"

// Sentinel errors returned by the pricing engine and transition handlers.
// Callers match them with errors.Is and use ClassOf to decide whether a
// retry makes sense.
var (
	// Arithmetic errors. Never retry with the same amount.
	ErrOverflow       = errors.New("arithmetic overflow")
	ErrUnderflow      = errors.New("arithmetic underflow")
	ErrDivisionByZero = errors.New("division by zero")

	// Validation errors. Safe to retry with corrected input.
	ErrInvalidParameters = errors.New("invalid curve parameters")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")

	// Authorization errors. Never retryable by the same signer.
	ErrUnauthorized = errors.New("signer is not the curve authority")

	// State errors. May become retryable after state changes elsewhere.
	ErrAlreadyInitialized  = errors.New("bonding curve already initialized")
	ErrNotInitialized      = errors.New("bonding curve not initialized")
	ErrInsufficientSupply  = errors.New("sell amount exceeds total supply")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrInsufficientFunds   = errors.New("insufficient reserve funds")
	ErrMintMismatch        = errors.New("token mint does not match curve record")
)

// Class groups errors into the retry taxonomy.
type Class string

const (
	ClassValidation    Class = "validation"
	ClassAuthorization Class = "authorization"
	ClassState         Class = "state"
	ClassArithmetic    Class = "arithmetic"
	ClassInternal      Class = "internal"
)

// ClassOf reports which taxonomy class err belongs to. Wrapped errors are
// unwrapped via errors.Is, so handlers can annotate freely with fmt.Errorf.
func ClassOf(err error) Class {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidParameters), errors.Is(err, ErrInvalidAmount):
		return ClassValidation
	case errors.Is(err, ErrUnauthorized):
		return ClassAuthorization
	case errors.Is(err, ErrAlreadyInitialized),
		errors.Is(err, ErrNotInitialized),
		errors.Is(err, ErrInsufficientSupply),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrMintMismatch):
		return ClassState
	case errors.Is(err, ErrOverflow), errors.Is(err, ErrUnderflow), errors.Is(err, ErrDivisionByZero):
		return ClassArithmetic
	default:
		return ClassInternal
	}
}
