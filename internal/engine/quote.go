// =============================
// File: internal/engine/quote.go
// =============================
package engine

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
	"github.com/rovshanmuradov/curve-engine/internal/derive"
)

// Curve returns a read-only snapshot of the record for a mint, including
// the spot price and the reserve held in custody.
func (e *Engine) Curve(ctx context.Context, mint solana.PublicKey) (*CurveInfo, error) {
	addr, _, err := derive.CurveAddress(mint)
	if err != nil {
		return nil, err
	}

	st, err := e.loadCurve(addr, mint)
	if err != nil {
		return nil, err
	}

	spot, err := curve.SpotPrice(st)
	if err != nil {
		return nil, err
	}

	return &CurveInfo{
		CurveAddress:   addr,
		TokenMint:      st.TokenMint,
		Authority:      st.Authority,
		InitialPrice:   st.InitialPrice,
		Slope:          st.Slope,
		TotalSupply:    st.TotalSupply,
		SpotPrice:      spot,
		ReserveBalance: e.reserve.ReserveBalance(addr),
		Bump:           st.Bump,
	}, nil
}

// QuoteTrade prices a prospective buy or sell against the current snapshot
// without moving anything. The preview can go stale the moment another trade
// commits; clients re-quote rather than hold it.
func (e *Engine) QuoteTrade(ctx context.Context, mint solana.PublicKey, side QuoteSide, amount uint64) (*Quote, error) {
	addr, _, err := derive.CurveAddress(mint)
	if err != nil {
		return nil, err
	}

	st, err := e.loadCurve(addr, mint)
	if err != nil {
		return nil, err
	}

	spotBefore, err := curve.SpotPrice(st)
	if err != nil {
		return nil, err
	}

	var lamports, supplyAfter uint64
	switch side {
	case QuoteBuy:
		lamports, err = curve.CostToBuy(st, amount)
		if err != nil {
			return nil, err
		}
		supplyAfter, err = curve.CheckedAdd(st.TotalSupply, amount)
	case QuoteSell:
		lamports, err = curve.ProceedsFromSell(st, amount)
		if err != nil {
			return nil, err
		}
		supplyAfter, err = curve.CheckedSub(st.TotalSupply, amount)
	default:
		return nil, fmt.Errorf("unknown quote side %q: %w", side, curve.ErrInvalidAmount)
	}
	if err != nil {
		return nil, err
	}

	spotAfter, err := curve.PriceAt(st, supplyAfter)
	if err != nil {
		return nil, err
	}

	return &Quote{
		CurveAddress: addr,
		Side:         side,
		Amount:       amount,
		Lamports:     lamports,
		SpotBefore:   spotBefore,
		SpotAfter:    spotAfter,
	}, nil
}
