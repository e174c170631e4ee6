// =============================
// File: internal/curve/state.go
// =============================
package curve

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// State is the persisted bonding-curve record, one per token mint. The field
// order matches the on-chain BondingCurveState account layout, so the borsh
// image round-trips against account data produced by the program.
type State struct {
	Authority    solana.PublicKey // identity allowed to update parameters
	TokenMint    solana.PublicKey // the fungible asset this curve prices
	InitialPrice uint64           // minor-unit price at zero supply, > 0
	Slope        uint64           // price increase per circulating unit, > 0
	TotalSupply  uint64           // units minted and not yet burned
	Bump         uint8            // derivation bump, stored for re-verification
}

// accountDiscriminator prefixes every serialized record, anchor-style:
// sha256("account:BondingCurveState")[0:8].
var accountDiscriminator = func() [8]byte {
	sum := sha256.Sum256([]byte("account:BondingCurveState"))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}()

// Validate checks the structural invariants of a loaded record. It runs on
// every load before the state is used; a zero slope degenerates the curve to
// a fixed-price sale and is rejected along with a zero initial price.
func (s *State) Validate() error {
	if s.InitialPrice == 0 || s.Slope == 0 {
		return fmt.Errorf("initial_price=%d slope=%d: %w", s.InitialPrice, s.Slope, ErrInvalidParameters)
	}
	return nil
}

// AssertAuthority fails with ErrUnauthorized unless signer is the curve
// authority.
func (s *State) AssertAuthority(signer solana.PublicKey) error {
	if !s.Authority.Equals(signer) {
		return ErrUnauthorized
	}
	return nil
}

// Marshal serializes the record as discriminator + borsh fields.
func (s *State) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(accountDiscriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode curve state: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a record previously produced by Marshal, verifying the
// discriminator so a foreign account image is rejected instead of silently
// misread.
func Unmarshal(data []byte) (*State, error) {
	if len(data) < len(accountDiscriminator) {
		return nil, fmt.Errorf("curve state data too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:8], accountDiscriminator[:]) {
		return nil, fmt.Errorf("invalid curve state discriminator")
	}
	st := new(State)
	if err := bin.NewBorshDecoder(data[8:]).Decode(st); err != nil {
		return nil, fmt.Errorf("failed to decode curve state: %w", err)
	}
	return st, nil
}
