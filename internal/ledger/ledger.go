// =============================
// File: internal/ledger/ledger.go
// =============================

// Package ledger defines the two funds-movement primitives the engine
// consumes from its environment: a reserve-currency transfer primitive and a
// token mint/burn primitive. Quantities cross these interfaces as uint64
// minor units only.
package ledger

import "github.com/gagliardetto/solana-go"

// Reserve moves the reserve currency between identities. Debit fails with
// curve.ErrInsufficientFunds when the identity's balance is below amount.
type Reserve interface {
	Credit(id solana.PublicKey, amount uint64) error
	Debit(id solana.PublicKey, amount uint64) error
	ReserveBalance(id solana.PublicKey) uint64
}

// Tokens issues and destroys units of a fungible asset for an identity.
// BurnFrom fails with curve.ErrInsufficientBalance when the owner holds
// fewer than amount units of mint.
type Tokens interface {
	MintTo(mint, owner solana.PublicKey, amount uint64) error
	BurnFrom(mint, owner solana.PublicKey, amount uint64) error
	TokenBalance(mint, owner solana.PublicKey) uint64
}
