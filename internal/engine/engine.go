// =============================
// File: internal/engine/engine.go
// =============================

// Package engine implements the bonding-curve state machine: the four
// transitions (Initialize, Buy, Sell, UpdateParameters) plus read-only
// quotes. All mutation of a curve record funnels through here.
package engine

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/events"
	"github.com/rovshanmuradov/curve-engine/internal/ledger"
	"github.com/rovshanmuradov/curve-engine/internal/store"
)

// Engine executes transitions against curve records. Transitions touching
// the same curve are serialized by a per-curve mutex so the read-modify-write
// of (reserve transfer, supply update, token balance) commits as one unit;
// different curves proceed fully in parallel.
type Engine struct {
	store   store.CurveStore
	reserve ledger.Reserve
	tokens  ledger.Tokens
	bus     *events.Bus
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[solana.PublicKey]*sync.Mutex
}

// New creates an engine over the given store and ledger primitives. bus may
// be nil when no subscriber cares about lifecycle events.
func New(s store.CurveStore, reserve ledger.Reserve, tokens ledger.Tokens, bus *events.Bus, logger *zap.Logger) *Engine {
	return &Engine{
		store:   s,
		reserve: reserve,
		tokens:  tokens,
		bus:     bus,
		logger:  logger.Named("engine"),
		locks:   make(map[solana.PublicKey]*sync.Mutex),
	}
}

// lockCurve acquires the mutex guarding one curve record and returns the
// unlock function. Locks are created lazily and never removed; the map grows
// with the number of distinct curves, which is bounded by the number of
// initialized mints.
func (e *Engine) lockCurve(addr solana.PublicKey) func() {
	e.mu.Lock()
	l, ok := e.locks[addr]
	if !ok {
		l = &sync.Mutex{}
		e.locks[addr] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (e *Engine) publish(event events.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(event); err != nil {
		e.logger.Warn("Failed to publish event",
			zap.String("event_type", string(event.Type())),
			zap.Error(err))
	}
}
