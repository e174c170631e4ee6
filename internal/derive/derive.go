// =============================
// File: internal/derive/derive.go
// =============================

// Package derive computes the deterministic storage location of a bonding
// curve record from the namespace seed and the token mint. Any party can
// reproduce the address without shared state, which is what lets Initialize
// cheaply check for prior existence and spares clients a lookup service.
package derive

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ProgramID namespaces all curve derivations. Same id the on-chain program
// declares, so addresses agree with records created there.
var ProgramID = solana.MustPublicKeyFromBase58("ExiyW5RS1e4XxjxeZHktijRhnYF6sJYzfmdzU85gFbS4")

// CurveSeed is the fixed namespace tag for curve records. One curve per
// mint; every caller must derive through here so no hardcoded address
// override is ever needed.
const CurveSeed = "bonding_curve"

// CurveAddress returns the storage address for the curve pricing mint,
// together with the bump that made the derivation land off the ed25519
// curve. The bump is persisted in the record so the address can be
// re-verified later without re-searching.
func CurveAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(CurveSeed), mint.Bytes()},
		ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive curve address: %w", err)
	}
	return addr, bump, nil
}

// VerifyCurveAddress recomputes the address from mint and the stored bump
// and checks it matches addr. Used to validate a loaded record against the
// location it was loaded from.
func VerifyCurveAddress(addr, mint solana.PublicKey, bump uint8) error {
	derived, err := solana.CreateProgramAddress(
		[][]byte{[]byte(CurveSeed), mint.Bytes(), {bump}},
		ProgramID,
	)
	if err != nil {
		return fmt.Errorf("failed to recreate curve address: %w", err)
	}
	if !derived.Equals(addr) {
		return fmt.Errorf("curve address mismatch: derived %s, stored %s", derived, addr)
	}
	return nil
}
