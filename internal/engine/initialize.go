// =============================
// File: internal/engine/initialize.go
// =============================
package engine

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
	"github.com/rovshanmuradov/curve-engine/internal/derive"
	"github.com/rovshanmuradov/curve-engine/internal/events"
)

// Initialize creates the curve record for a mint. Exactly-once: a second
// Initialize for the same mint observes ErrAlreadyInitialized, never a
// silent overwrite. The existence check and the create run under the same
// curve lock, so two racing initializers cannot both win.
func (e *Engine) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if req.InitialPrice == 0 || req.Slope == 0 {
		return nil, fmt.Errorf("initial_price=%d slope=%d: %w", req.InitialPrice, req.Slope, curve.ErrInvalidParameters)
	}

	addr, bump, err := derive.CurveAddress(req.TokenMint)
	if err != nil {
		return nil, err
	}

	unlock := e.lockCurve(addr)
	defer unlock()

	exists, err := e.store.Exists(addr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("curve for mint %s: %w", req.TokenMint, curve.ErrAlreadyInitialized)
	}

	st := &curve.State{
		Authority:    req.Authority,
		TokenMint:    req.TokenMint,
		InitialPrice: req.InitialPrice,
		Slope:        req.Slope,
		TotalSupply:  0,
		Bump:         bump,
	}
	if err := e.store.Save(addr, st); err != nil {
		return nil, err
	}

	e.logger.Info("Bonding curve initialized",
		zap.String("curve", addr.String()),
		zap.String("token_mint", req.TokenMint.String()),
		zap.String("authority", req.Authority.String()),
		zap.Uint64("initial_price", req.InitialPrice),
		zap.Uint64("slope", req.Slope))

	e.publish(events.NewCurveInitializedEvent(addr, req.TokenMint, req.Authority, req.InitialPrice, req.Slope))

	return &InitializeResult{CurveAddress: addr, Bump: bump}, nil
}

// loadCurve loads and validates the record for a mint, re-deriving the
// address and cross-checking the stored mint so a corrupted or misplaced
// record is rejected before any funds move. Mutating callers hold the
// curve lock; read-only callers may race and see a stale snapshot.
func (e *Engine) loadCurve(addr, mint solana.PublicKey) (*curve.State, error) {
	st, err := e.store.Load(addr)
	if err != nil {
		return nil, err
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	if !st.TokenMint.Equals(mint) {
		return nil, fmt.Errorf("record at %s prices %s, requested %s: %w", addr, st.TokenMint, mint, curve.ErrMintMismatch)
	}
	if err := derive.VerifyCurveAddress(addr, st.TokenMint, st.Bump); err != nil {
		return nil, err
	}
	return st, nil
}
