// =============================
// File: internal/engine/requests.go
// =============================
package engine

import "github.com/gagliardetto/solana-go"

// Request and response shapes of the four transitions. All quantities are
// uint64 minor units; formatting for humans happens on the client side.

type InitializeRequest struct {
	Authority    solana.PublicKey
	TokenMint    solana.PublicKey
	InitialPrice uint64
	Slope        uint64
}

type InitializeResult struct {
	CurveAddress solana.PublicKey
	Bump         uint8
}

type BuyRequest struct {
	Buyer     solana.PublicKey
	TokenMint solana.PublicKey
	Amount    uint64
}

type BuyResult struct {
	CurveAddress solana.PublicKey
	Cost         uint64 // lamports paid
	NewSupply    uint64
}

type SellRequest struct {
	Seller    solana.PublicKey
	TokenMint solana.PublicKey
	Amount    uint64
}

type SellResult struct {
	CurveAddress solana.PublicKey
	Proceeds     uint64 // lamports received
	NewSupply    uint64
}

type UpdateParametersRequest struct {
	Authority    solana.PublicKey
	TokenMint    solana.PublicKey
	InitialPrice uint64
	Slope        uint64
}

type UpdateParametersResult struct {
	CurveAddress solana.PublicKey
	InitialPrice uint64
	Slope        uint64
}

// CurveInfo is the read-only snapshot returned by Curve.
type CurveInfo struct {
	CurveAddress   solana.PublicKey
	TokenMint      solana.PublicKey
	Authority      solana.PublicKey
	InitialPrice   uint64
	Slope          uint64
	TotalSupply    uint64
	SpotPrice      uint64
	ReserveBalance uint64
	Bump           uint8
}

// QuoteSide selects which trade a quote prices.
type QuoteSide string

const (
	QuoteBuy  QuoteSide = "buy"
	QuoteSell QuoteSide = "sell"
)

// Quote is a read-only trade preview; nothing moves.
type Quote struct {
	CurveAddress solana.PublicKey
	Side         QuoteSide
	Amount       uint64
	Lamports     uint64 // cost for buy, proceeds for sell
	SpotBefore   uint64
	SpotAfter    uint64
}
