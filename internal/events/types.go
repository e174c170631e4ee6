// =============================
// File: internal/events/types.go
// =============================
package events

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
)

// EventType represents the type of event.
type EventType string

const (
	CurveInitialized EventType = "curve.initialized"
	CurveUpdated     EventType = "curve.params_updated"
	TradeExecuted    EventType = "trade.executed"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.EventTime }

func newBase(t EventType) BaseEvent {
	return BaseEvent{EventType: t, EventTime: time.Now().UTC()}
}

// CurveInitializedEvent is published after a curve record is created.
type CurveInitializedEvent struct {
	BaseEvent
	CurveAddress solana.PublicKey
	TokenMint    solana.PublicKey
	Authority    solana.PublicKey
	InitialPrice uint64
	Slope        uint64
}

func NewCurveInitializedEvent(addr, mint, authority solana.PublicKey, initialPrice, slope uint64) CurveInitializedEvent {
	return CurveInitializedEvent{
		BaseEvent:    newBase(CurveInitialized),
		CurveAddress: addr,
		TokenMint:    mint,
		Authority:    authority,
		InitialPrice: initialPrice,
		Slope:        slope,
	}
}

// TradeSide distinguishes buys from sells.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// TradeExecutedEvent is published after a buy or sell commits.
type TradeExecutedEvent struct {
	BaseEvent
	CurveAddress solana.PublicKey
	TokenMint    solana.PublicKey
	Trader       solana.PublicKey
	Side         TradeSide
	Amount       uint64
	Lamports     uint64 // cost paid on buy, proceeds received on sell
	NewSupply    uint64
}

func NewTradeExecutedEvent(addr, mint, trader solana.PublicKey, side TradeSide, amount, lamports, newSupply uint64) TradeExecutedEvent {
	return TradeExecutedEvent{
		BaseEvent:    newBase(TradeExecuted),
		CurveAddress: addr,
		TokenMint:    mint,
		Trader:       trader,
		Side:         side,
		Amount:       amount,
		Lamports:     lamports,
		NewSupply:    newSupply,
	}
}

// CurveUpdatedEvent is published after the authority changes parameters.
type CurveUpdatedEvent struct {
	BaseEvent
	CurveAddress solana.PublicKey
	TokenMint    solana.PublicKey
	InitialPrice uint64
	Slope        uint64
}

func NewCurveUpdatedEvent(addr, mint solana.PublicKey, initialPrice, slope uint64) CurveUpdatedEvent {
	return CurveUpdatedEvent{
		BaseEvent:    newBase(CurveUpdated),
		CurveAddress: addr,
		TokenMint:    mint,
		InitialPrice: initialPrice,
		Slope:        slope,
	}
}

// Handler processes events.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc allows using a function as a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Subscription represents an active event subscription.
type Subscription interface {
	Unsubscribe()
}
