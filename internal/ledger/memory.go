// =============================
// File: internal/ledger/memory.go
// =============================
package ledger

import (
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
)

type tokenKey struct {
	mint  solana.PublicKey
	owner solana.PublicKey
}

// InMemory implements both Reserve and Tokens over process-local maps. Each
// call is individually atomic under the ledger mutex; the engine composes
// calls into larger atomic units with its per-curve locks and explicit
// rollback.
type InMemory struct {
	mu       sync.RWMutex
	reserves map[solana.PublicKey]uint64
	tokens   map[tokenKey]uint64
}

func NewInMemory() *InMemory {
	return &InMemory{
		reserves: make(map[solana.PublicKey]uint64),
		tokens:   make(map[tokenKey]uint64),
	}
}

// Credit adds amount to the identity's reserve balance.
func (l *InMemory) Credit(id solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := curve.CheckedAdd(l.reserves[id], amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", id, err)
	}
	l.reserves[id] = next
	return nil
}

// Debit removes amount from the identity's reserve balance.
func (l *InMemory) Debit(id solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.reserves[id]
	if balance < amount {
		return fmt.Errorf("debit %s for %d with balance %d: %w", id, amount, balance, curve.ErrInsufficientFunds)
	}
	l.reserves[id] = balance - amount
	return nil
}

// ReserveBalance returns the identity's reserve balance.
func (l *InMemory) ReserveBalance(id solana.PublicKey) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reserves[id]
}

// MintTo issues amount units of mint to owner.
func (l *InMemory) MintTo(mint, owner solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := tokenKey{mint: mint, owner: owner}
	next, err := curve.CheckedAdd(l.tokens[key], amount)
	if err != nil {
		return fmt.Errorf("mint %d to %s: %w", amount, owner, err)
	}
	l.tokens[key] = next
	return nil
}

// BurnFrom destroys amount units of mint held by owner.
func (l *InMemory) BurnFrom(mint, owner solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := tokenKey{mint: mint, owner: owner}
	balance := l.tokens[key]
	if balance < amount {
		return fmt.Errorf("burn %d from %s with balance %d: %w", amount, owner, balance, curve.ErrInsufficientBalance)
	}
	l.tokens[key] = balance - amount
	return nil
}

// TokenBalance returns how many units of mint the owner holds.
func (l *InMemory) TokenBalance(mint, owner solana.PublicKey) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tokens[tokenKey{mint: mint, owner: owner}]
}

var (
	_ Reserve = (*InMemory)(nil)
	_ Tokens  = (*InMemory)(nil)
)
