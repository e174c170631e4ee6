// internal/client/format.go
package client

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const lamportsPerSOL = 1_000_000_000

// FormatLamports renders a lamport amount as a SOL string for display.
// All arithmetic stays in uint64 lamports; decimals are presentation only.
func FormatLamports(lamports uint64) string {
	return decimal.NewFromUint64(lamports).
		Div(decimal.NewFromInt(lamportsPerSOL)).
		String()
}

// ParseSOL converts a human SOL amount to lamports, rejecting values with
// sub-lamport precision or outside the uint64 range.
func ParseSOL(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid SOL amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("SOL amount must not be negative: %q", s)
	}

	lamports := d.Mul(decimal.NewFromInt(lamportsPerSOL))
	if !lamports.IsInteger() {
		return 0, fmt.Errorf("SOL amount %q has sub-lamport precision", s)
	}
	if lamports.Cmp(decimal.NewFromUint64(^uint64(0))) > 0 {
		return 0, fmt.Errorf("SOL amount %q exceeds the uint64 lamport range", s)
	}

	return lamports.BigInt().Uint64(), nil
}
