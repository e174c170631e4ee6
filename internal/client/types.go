// internal/client/types.go
package client

import "strconv"

// Response shapes mirror the server's wire format: uint64 amounts travel
// as decimal strings.

type InitializeCurveResult struct {
	CurveAddress string `json:"curve_address"`
	Bump         uint8  `json:"bump"`
}

type CurveSnapshot struct {
	CurveAddress   string `json:"curve_address"`
	TokenMint      string `json:"token_mint"`
	Authority      string `json:"authority"`
	InitialPrice   string `json:"initial_price"`
	Slope          string `json:"slope"`
	TotalSupply    string `json:"total_supply"`
	SpotPrice      string `json:"spot_price"`
	ReserveBalance string `json:"reserve_balance"`
	Bump           uint8  `json:"bump"`
}

type TradeResult struct {
	CurveAddress string `json:"curve_address"`
	Side         string `json:"side"`
	Amount       string `json:"amount"`
	Lamports     string `json:"lamports"`
	NewSupply    string `json:"new_supply"`
}

type QuoteResult struct {
	CurveAddress string `json:"curve_address"`
	Side         string `json:"side"`
	Amount       string `json:"amount"`
	Lamports     string `json:"lamports"`
	SpotBefore   string `json:"spot_before"`
	SpotAfter    string `json:"spot_after"`
}

func formatUint64(n uint64) string {
	return strconv.FormatUint(n, 10)
}
