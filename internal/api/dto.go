// =============================
// File: internal/api/dto.go
// =============================
package api

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// Lamport and token amounts travel as decimal strings: uint64 does not fit
// in a JSON number without precision loss past 2^53.

type InitializeCurveRequest struct {
	Authority    string `json:"authority" binding:"required"`
	TokenMint    string `json:"token_mint" binding:"required"`
	InitialPrice string `json:"initial_price" binding:"required"`
	Slope        string `json:"slope" binding:"required"`
}

type UpdateParametersRequest struct {
	Authority    string `json:"authority" binding:"required"`
	InitialPrice string `json:"initial_price" binding:"required"`
	Slope        string `json:"slope" binding:"required"`
}

type TradeRequest struct {
	Account string `json:"account" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

type CurveResponse struct {
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

type InitializeCurveResponse struct {
	CurveAddress string `json:"curve_address"`
	Bump         uint8  `json:"bump"`
}

type TradeResponse struct {
	CurveAddress string `json:"curve_address"`
	Side         string `json:"side"`
	Amount       string `json:"amount"`
	Lamports     string `json:"lamports"`
	NewSupply    string `json:"new_supply"`
}

type QuoteResponse struct {
	CurveAddress string `json:"curve_address"`
	Side         string `json:"side"`
	Amount       string `json:"amount"`
	Lamports     string `json:"lamports"`
	SpotBefore   string `json:"spot_before"`
	SpotAfter    string `json:"spot_after"`
}

type UpdateParametersResponse struct {
	CurveAddress string `json:"curve_address"`
	InitialPrice string `json:"initial_price"`
	Slope        string `json:"slope"`
}

func parseUint64(field, value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an unsigned 64-bit decimal: %q", field, value)
	}
	return n, nil
}

func parsePublicKey(field, value string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s is not a valid base58 public key: %q", field, value)
	}
	return pk, nil
}

func formatUint64(n uint64) string {
	return strconv.FormatUint(n, 10)
}
