// =============================
// File: internal/store/store.go
// =============================

// Package store is the key-value persistence primitive for curve records,
// addressed by the derived storage location.
package store

import (
	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
)

// CurveStore persists bonding-curve records by derived address. Load returns
// curve.ErrNotInitialized when no record exists at the address. Implementations
// must be safe for concurrent use; serialization of read-modify-write cycles
// against one curve is the engine's job, not the store's.
type CurveStore interface {
	Load(addr solana.PublicKey) (*curve.State, error)
	Save(addr solana.PublicKey, st *curve.State) error
	Exists(addr solana.PublicKey) (bool, error)
	Close() error
}
