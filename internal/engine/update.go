// =============================
// File: internal/engine/update.go
// =============================
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
	"github.com/rovshanmuradov/curve-engine/internal/derive"
	"github.com/rovshanmuradov/curve-engine/internal/events"
)

// UpdateParameters overwrites initial price and slope in place. Authority
// only; total supply is untouched, so open positions keep their units and
// only future pricing changes.
func (e *Engine) UpdateParameters(ctx context.Context, req UpdateParametersRequest) (*UpdateParametersResult, error) {
	if req.InitialPrice == 0 || req.Slope == 0 {
		return nil, fmt.Errorf("initial_price=%d slope=%d: %w", req.InitialPrice, req.Slope, curve.ErrInvalidParameters)
	}

	addr, _, err := derive.CurveAddress(req.TokenMint)
	if err != nil {
		return nil, err
	}

	unlock := e.lockCurve(addr)
	defer unlock()

	st, err := e.loadCurve(addr, req.TokenMint)
	if err != nil {
		return nil, err
	}
	if err := st.AssertAuthority(req.Authority); err != nil {
		return nil, err
	}

	oldPrice, oldSlope := st.InitialPrice, st.Slope
	st.InitialPrice = req.InitialPrice
	st.Slope = req.Slope
	if err := e.store.Save(addr, st); err != nil {
		return nil, fmt.Errorf("failed to persist curve state: %w", err)
	}

	e.logger.Info("Curve parameters updated",
		zap.String("curve", addr.String()),
		zap.Uint64("old_initial_price", oldPrice),
		zap.Uint64("new_initial_price", req.InitialPrice),
		zap.Uint64("old_slope", oldSlope),
		zap.Uint64("new_slope", req.Slope))

	e.publish(events.NewCurveUpdatedEvent(addr, req.TokenMint, req.InitialPrice, req.Slope))

	return &UpdateParametersResult{CurveAddress: addr, InitialPrice: req.InitialPrice, Slope: req.Slope}, nil
}
