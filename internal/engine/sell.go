// =============================
// File: internal/engine/sell.go
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

// Sell burns req.Amount units from the seller and releases the integrated
// proceeds from curve custody. Selling the entire supply is valid and drains
// the curve to zero. Burn, reserve release and supply update commit together
// with rollback on any failed sub-step.
func (e *Engine) Sell(ctx context.Context, req SellRequest) (*SellResult, error) {
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

	proceeds, err := curve.ProceedsFromSell(st, req.Amount)
	if err != nil {
		return nil, err
	}
	newSupply, err := curve.CheckedSub(st.TotalSupply, req.Amount)
	if err != nil {
		return nil, err
	}

	// Burn first, as the program does; the seller's balance is the
	// precondition most likely to fail.
	if err := e.tokens.BurnFrom(req.TokenMint, req.Seller, req.Amount); err != nil {
		return nil, err
	}
	if err := e.reserve.Debit(addr, proceeds); err != nil {
		e.rollback("sell: remint", e.tokens.MintTo(req.TokenMint, req.Seller, req.Amount))
		return nil, fmt.Errorf("curve custody underfunded: %w", err)
	}
	if err := e.reserve.Credit(req.Seller, proceeds); err != nil {
		e.rollback("sell: restore custody", e.reserve.Credit(addr, proceeds))
		e.rollback("sell: remint", e.tokens.MintTo(req.TokenMint, req.Seller, req.Amount))
		return nil, err
	}

	st.TotalSupply = newSupply
	if err := e.store.Save(addr, st); err != nil {
		e.rollback("sell: reclaim proceeds", e.reserve.Debit(req.Seller, proceeds))
		e.rollback("sell: restore custody", e.reserve.Credit(addr, proceeds))
		e.rollback("sell: remint", e.tokens.MintTo(req.TokenMint, req.Seller, req.Amount))
		return nil, fmt.Errorf("failed to persist curve state: %w", err)
	}

	e.logger.Info("Sell executed",
		zap.String("curve", addr.String()),
		zap.String("seller", req.Seller.String()),
		zap.Uint64("amount", req.Amount),
		zap.Uint64("proceeds_lamports", proceeds),
		zap.Uint64("new_supply", newSupply))

	e.publish(events.NewTradeExecutedEvent(addr, req.TokenMint, req.Seller, events.SideSell, req.Amount, proceeds, newSupply))

	return &SellResult{CurveAddress: addr, Proceeds: proceeds, NewSupply: newSupply}, nil
}
