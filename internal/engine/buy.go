// =============================
// File: internal/engine/buy.go
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

// Buy mints req.Amount units to the buyer against payment at the curve's
// integrated price. The reserve transfer, the mint, and the supply update
// commit together: any failure after a sub-step has applied rolls the
// applied sub-steps back before the error is returned.
func (e *Engine) Buy(ctx context.Context, req BuyRequest) (*BuyResult, error) {
	if req.Amount == 0 {
		return nil, curve.ErrInvalidAmount
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

	cost, err := curve.CostToBuy(st, req.Amount)
	if err != nil {
		return nil, err
	}
	newSupply, err := curve.CheckedAdd(st.TotalSupply, req.Amount)
	if err != nil {
		return nil, err
	}

	// Collect payment into the curve's custody (the derived address itself,
	// as in the on-chain program).
	if err := e.reserve.Debit(req.Buyer, cost); err != nil {
		return nil, err
	}
	if err := e.reserve.Credit(addr, cost); err != nil {
		e.rollback("buy: refund buyer", e.reserve.Credit(req.Buyer, cost))
		return nil, err
	}
	if err := e.tokens.MintTo(req.TokenMint, req.Buyer, req.Amount); err != nil {
		e.rollback("buy: return custody", e.reserve.Debit(addr, cost))
		e.rollback("buy: refund buyer", e.reserve.Credit(req.Buyer, cost))
		return nil, err
	}

	st.TotalSupply = newSupply
	if err := e.store.Save(addr, st); err != nil {
		e.rollback("buy: unmint", e.tokens.BurnFrom(req.TokenMint, req.Buyer, req.Amount))
		e.rollback("buy: return custody", e.reserve.Debit(addr, cost))
		e.rollback("buy: refund buyer", e.reserve.Credit(req.Buyer, cost))
		return nil, fmt.Errorf("failed to persist curve state: %w", err)
	}

	e.logger.Info("Buy executed",
		zap.String("curve", addr.String()),
		zap.String("buyer", req.Buyer.String()),
		zap.Uint64("amount", req.Amount),
		zap.Uint64("cost_lamports", cost),
		zap.Uint64("new_supply", newSupply))

	e.publish(events.NewTradeExecutedEvent(addr, req.TokenMint, req.Buyer, events.SideBuy, req.Amount, cost, newSupply))

	return &BuyResult{CurveAddress: addr, Cost: cost, NewSupply: newSupply}, nil
}

// rollback logs a failed compensation step. Compensations operate on
// balances this transition just moved while the curve lock is still held, so
// they cannot fail under normal operation; a failure here means the ledger
// itself is broken and the operator needs to know.
func (e *Engine) rollback(step string, err error) {
	if err != nil {
		e.logger.Error("Rollback step failed", zap.String("step", step), zap.Error(err))
	}
}
